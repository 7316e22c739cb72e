package voting

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// flowVotingABI covers the three submission entry points, one per backend.
const flowVotingABI = `[
	{"type":"function","name":"voteWithProofs","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"owners","type":"address[]"},
		{"name":"tokenIds","type":"uint256[][]"},
		{"name":"recipients","type":"address[]"},
		{"name":"percentages","type":"uint32[]"},
		{"name":"blockNumber","type":"uint256"},
		{"name":"stateRoot","type":"bytes32"},
		{"name":"proofs","type":"bytes[]"}]},
	{"type":"function","name":"vote","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"recipients","type":"address[]"},
		{"name":"percentages","type":"uint32[]"}]},
	{"type":"function","name":"setAllocations","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"recipients","type":"address[]"},
		{"name":"percentages","type":"uint32[]"}]}
]`

var votingABI = mustParseABI(flowVotingABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("voting abi: %v", err))
	}
	return parsed
}

// packCall encodes method + args into calldata and returns the 4 byte selector with it.
func packCall(method string, args ...interface{}) (selector [4]byte, data []byte, err error) {
	m, ok := votingABI.Methods[method]
	if !ok {
		return selector, nil, fmt.Errorf("%w: no abi method %q", ErrUnsupportedBackend, method)
	}
	data, err = votingABI.Pack(method, args...)
	if err != nil {
		return selector, nil, fmt.Errorf("pack %s: %w", method, err)
	}
	copy(selector[:], m.ID)
	return selector, data, nil
}

// unpackCall decodes calldata produced by packCall, used by the cli and tests to read calls back.
func unpackCall(data []byte) (string, []interface{}, error) {
	if len(data) < 4 {
		return "", nil, fmt.Errorf("calldata too short: %d bytes", len(data))
	}
	m, err := votingABI.MethodById(data[:4])
	if err != nil {
		return "", nil, err
	}
	values, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return "", nil, err
	}
	return m.Name, values, nil
}

// DecodeCall is the exported form of unpackCall.
func DecodeCall(data []byte) (method string, values []interface{}, err error) {
	return unpackCall(data)
}
