package votestore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

// recordVersion leads every encoded record so the layout can change later.
const recordVersion byte = 1

type binWriter struct {
	buf bytes.Buffer
}

func newWriter() *binWriter { return &binWriter{} }

func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeUint64 writes big endian so tooling can read it without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint keeps counts and bps compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writeAddress(a sdk.Address) {
	w.writeString(a.String())
}

// EncodeRecord packs a VoteRecord, allocations in their recorded order.
// Example payload: EncodeRecord(&VoteRecord{Contract: "0x..", Holder: "0x..", Allocations: []voting.Allocation{{Recipient: "0xabc..", Bps: 2500}}})
func EncodeRecord(rec *VoteRecord) []byte {
	w := newWriter()
	w.buf.WriteByte(recordVersion)
	w.writeAddress(rec.Contract)
	w.writeAddress(rec.Holder)
	w.writeUint64(rec.BlockNumber)
	w.writeInt64(rec.UpdatedAt)
	w.writeVarUint(uint64(len(rec.Allocations)))
	for _, a := range rec.Allocations {
		w.writeString(a.Recipient.String())
		w.writeVarUint(uint64(a.Bps))
	}
	return w.bytes()
}

type binReader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

func (r *binReader) readInt64() (int64, error) {
	v, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if l > uint64(len(r.data)-r.pos) {
		return "", errors.New("unexpected EOF")
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

// DecodeRecord is the inverse of EncodeRecord. Out of range bps are rejected,
// a stored record must still seed an AllocationSet.
func DecodeRecord(data []byte) (*VoteRecord, error) {
	r := newReader(data)
	version, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if version != recordVersion {
		return nil, fmt.Errorf("unknown record version %d", version)
	}
	rec := &VoteRecord{}
	contract, err := r.readString()
	if err != nil {
		return nil, err
	}
	holder, err := r.readString()
	if err != nil {
		return nil, err
	}
	rec.Contract, rec.Holder = sdk.Address(contract), sdk.Address(holder)
	if rec.BlockNumber, err = r.readUint64(); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	count, err := r.readVarUint()
	if err != nil {
		return nil, err
	}
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("allocation count %d exceeds record size", count)
	}
	rec.Allocations = make([]voting.Allocation, 0, count)
	for i := uint64(0); i < count; i++ {
		recipient, err := r.readString()
		if err != nil {
			return nil, err
		}
		bps, err := r.readVarUint()
		if err != nil {
			return nil, err
		}
		if bps > voting.MaxBps {
			return nil, fmt.Errorf("%w: %d bps for %s", voting.ErrInvalidAllocationValue, bps, recipient)
		}
		rec.Allocations = append(rec.Allocations, voting.Allocation{
			Recipient: voting.RecipientID(recipient),
			Bps:       uint32(bps),
		})
	}
	if r.pos != len(data) {
		return nil, fmt.Errorf("%d trailing bytes", len(data)-r.pos)
	}
	return rec, nil
}
