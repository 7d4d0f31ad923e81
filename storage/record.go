package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/art"
	"xdao.co/paint/cidutil"
)

// Record is everything persisted for one token: its immutable trait and the
// ordered packed objects of its art.
type Record struct {
	TokenID uint64
	Trait   art.Trait
	Objects []art.Packed
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := Record{TokenID: r.TokenID, Trait: r.Trait}
	if r.Objects != nil {
		out.Objects = make([]art.Packed, len(r.Objects))
		for i, p := range r.Objects {
			out.Objects[i] = art.Packed{Base: p.Base}
			if p.AdditionalPoints != nil {
				out.Objects[i].AdditionalPoints = append([]byte(nil), p.AdditionalPoints...)
			}
		}
	}
	return out
}

var recordMagic = [4]byte{'P', 'N', 'T', 1}

const traitSize = art.NumTraitColors*3 + 3

// MarshalRecord encodes r canonically:
//
//	magic "PNT\x01" | token id u64 | trait (5x rgb, shape0, shape1, polygon)
//	| object count u32 | per object: base (32 bytes) | overflow len u32 | overflow
//
// All integers are big-endian.
func MarshalRecord(r Record) []byte {
	size := len(recordMagic) + 8 + traitSize + 4
	for _, p := range r.Objects {
		size += 32 + 4 + len(p.AdditionalPoints)
	}
	b := make([]byte, 0, size)
	b = append(b, recordMagic[:]...)
	b = binary.BigEndian.AppendUint64(b, r.TokenID)
	for _, c := range r.Trait.Colors {
		b = append(b, byte(c>>16), byte(c>>8), byte(c))
	}
	b = append(b, byte(r.Trait.Shape0), byte(r.Trait.Shape1), byte(r.Trait.Polygon))
	b = binary.BigEndian.AppendUint32(b, uint32(len(r.Objects)))
	for _, p := range r.Objects {
		base := p.Base.Bytes32()
		b = append(b, base[:]...)
		b = binary.BigEndian.AppendUint32(b, uint32(len(p.AdditionalPoints)))
		b = append(b, p.AdditionalPoints...)
	}
	return b
}

// UnmarshalRecord decodes bytes produced by MarshalRecord. Any structural
// problem, including trailing bytes or an invalid trait, is ErrMalformed.
func UnmarshalRecord(b []byte) (Record, error) {
	rd := reader{b: b}
	magic := rd.next(len(recordMagic))
	if magic == nil || !bytes.Equal(magic, recordMagic[:]) {
		return Record{}, fmt.Errorf("%w: bad magic", ErrMalformed)
	}
	var r Record
	r.TokenID = rd.u64()
	tb := rd.next(traitSize)
	if tb == nil {
		return Record{}, fmt.Errorf("%w: short trait", ErrMalformed)
	}
	for i := range r.Trait.Colors {
		r.Trait.Colors[i] = art.Color(uint32(tb[3*i])<<16 | uint32(tb[3*i+1])<<8 | uint32(tb[3*i+2]))
	}
	r.Trait.Shape0 = art.Shape(tb[15])
	r.Trait.Shape1 = art.Shape(tb[16])
	r.Trait.Polygon = int(tb[17])
	if err := r.Trait.Validate(); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	n := rd.u32()
	if rd.err {
		return Record{}, fmt.Errorf("%w: truncated header", ErrMalformed)
	}
	// Each object needs at least 36 bytes; reject counts the input cannot hold
	// before allocating.
	if uint64(n)*36 > uint64(len(rd.b)) {
		return Record{}, fmt.Errorf("%w: object count %d exceeds input", ErrMalformed, n)
	}
	if n > 0 {
		r.Objects = make([]art.Packed, 0, n)
	}
	for i := uint32(0); i < n; i++ {
		base := rd.next(32)
		l := rd.u32()
		extra := rd.next(int(l))
		if rd.err {
			return Record{}, fmt.Errorf("%w: truncated object %d", ErrMalformed, i)
		}
		var p art.Packed
		p.Base.SetBytes32(base)
		if l > 0 {
			p.AdditionalPoints = append([]byte(nil), extra...)
		}
		r.Objects = append(r.Objects, p)
	}
	if len(rd.b) != 0 {
		return Record{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(rd.b))
	}
	return r, nil
}

// CheckRecord reports whether every object in r is accepted under r's trait
// and already canonically encoded. Records arriving from outside the process
// pass through it before they are stored or rendered. Failures wrap both
// ErrMalformed and the rejecting *art.Error.
func CheckRecord(r Record) error {
	objs, err := art.AcceptAll(r.Objects, r.Trait)
	if err != nil {
		return fmt.Errorf("%w: token %d: %w", ErrMalformed, r.TokenID, err)
	}
	canonical, err := art.EncodeAll(objs)
	if err != nil {
		return fmt.Errorf("%w: token %d: %w", ErrMalformed, r.TokenID, err)
	}
	for i := range canonical {
		if !canonical[i].Equal(r.Objects[i]) {
			return fmt.Errorf("%w: token %d: object %d is not canonically encoded", ErrMalformed, r.TokenID, i)
		}
	}
	return nil
}

// RecordCID returns the CID of r's canonical encoding.
func RecordCID(r Record) (cid.Cid, error) {
	return cidutil.Sum(MarshalRecord(r))
}

type reader struct {
	b   []byte
	err bool
}

func (r *reader) next(n int) []byte {
	if r.err || n < 0 || len(r.b) < n {
		r.err = true
		return nil
	}
	out := r.b[:n]
	r.b = r.b[n:]
	return out
}

func (r *reader) u32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
