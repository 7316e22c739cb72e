package voting

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_flowvote/sdk"
)

func TestParseAllocations(t *testing.T) {
	got, err := ParseAllocations(" " + string(recipientA) + ":2500; " + string(recipientB) + ":50%," + string(recipientC) + ":12.5%")
	require.NoError(t, err)
	assert.Equal(t, []Allocation{{recipientA, 2500}, {recipientB, 5000}, {recipientC, 1250}}, got)

	got, err = ParseAllocations("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseAllocations("did:pkh:eip155:10:" + string(recipientA) + ":0")
	require.NoError(t, err)
	assert.Equal(t, RecipientID("did:pkh:eip155:10:"+string(recipientA)), got[0].Recipient)
	assert.Equal(t, uint32(0), got[0].Bps)
}

func TestParseAllocationsRejects(t *testing.T) {
	for _, raw := range []string{
		string(recipientA) + ":10001",
		string(recipientA) + ":-1",
		string(recipientA) + ":12.5",
		string(recipientA) + ":100.01%",
		string(recipientA) + ":1.234%",
		string(recipientA) + ":abc",
		string(recipientA),
		":100",
	} {
		_, err := ParseAllocations(raw)
		assert.ErrorIs(t, err, ErrInvalidAllocationValue, raw)
	}
}

func TestParseUnits(t *testing.T) {
	units, err := ParseUnits(string(ownerA) + ":1," + string(ownerB) + ":0x10")
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, ownerA, units[0].Owner)
	assert.Equal(t, big.NewInt(1), units[0].UnitID)
	assert.Equal(t, big.NewInt(16), units[1].UnitID)

	_, err = ParseUnits("nobody:1")
	assert.Error(t, err)
	_, err = ParseUnits(string(ownerA) + ":-4")
	assert.Error(t, err)
	_, err = ParseUnits(string(ownerA))
	assert.Error(t, err)
}

func TestLoadSessionConfigAndUnits(t *testing.T) {
	path := writeTempFile(t, "session.json", `{
		"contract": " 0x9999999999999999999999999999999999999999 ",
		"votingToken": "0x8888888888888888888888888888888888888888",
		"votingAsset": "ERC721",
		"holder": "0x1111111111111111111111111111111111111111",
		"proofServiceUrl": "https://proofs.example.org/",
		"proofTimeoutSeconds": 5
	}`)
	cfg, err := LoadSessionConfig(path)
	require.NoError(t, err)
	assert.Equal(t, contractAddr, cfg.Contract)
	assert.Equal(t, sdk.AssetERC721, cfg.VotingAsset)
	assert.Equal(t, uint64(FallbackChainID), cfg.ChainID)
	assert.Equal(t, "https://proofs.example.org", cfg.ProofServiceURL)
	assert.Equal(t, int64(5), int64(cfg.ProofTimeout().Seconds()))
	assert.NoError(t, cfg.Validate())

	_, err = LoadSessionConfig(writeTempFile(t, "bad.json", `{"contract":`))
	assert.Error(t, err)

	unitsPath := writeTempFile(t, "units.json", `[
		{"owner": "0x2222222222222222222222222222222222222222", "tokenId": "7"},
		{"owner": "0x3333333333333333333333333333333333333333", "tokenId": "0x08"}
	]`)
	units, err := LoadUnits(unitsPath)
	require.NoError(t, err)
	assert.Equal(t, []VotingPowerUnit{NFTUnit(ownerA, 7), NFTUnit(ownerB, 8)}, units)

	_, err = LoadUnits(writeTempFile(t, "bad-units.json", `[{"owner":"x","tokenId":"1"}]`))
	assert.Error(t, err)
}

func TestSessionConfigDefaults(t *testing.T) {
	cfg := SessionConfig{}
	cfg.Normalize()
	assert.Equal(t, uint64(FallbackChainID), cfg.ChainID)
	assert.Equal(t, FallbackProofTimeout, cfg.ProofTimeout())
	assert.Error(t, cfg.Validate())
}
