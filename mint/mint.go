// Package mint supplies the trait assigned to a token when it is minted.
//
// Randomized trait generation belongs to the external mint subsystem; this
// package only defines the seam it plugs into plus a deterministic source for
// tooling and tests.
package mint

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"xdao.co/paint/art"
)

// TraitSource returns the trait for a newly minted token.
type TraitSource interface {
	TraitFor(tokenID uint64) (art.Trait, error)
}

// TraitFunc adapts a function to TraitSource.
type TraitFunc func(tokenID uint64) (art.Trait, error)

func (f TraitFunc) TraitFor(tokenID uint64) (art.Trait, error) { return f(tokenID) }

// Fixed always returns t.
func Fixed(t art.Trait) TraitSource {
	return TraitFunc(func(uint64) (art.Trait, error) { return t, nil })
}

// toolShapes are the shapes a trait can grant. Polygon and Path are granted to
// every token and never drawn.
var toolShapes = [...]art.Shape{art.Rect, art.Line, art.Ellipse, art.Polyline}

var polygonArities = [...]int{3, 5, 6}

// KeccakSource derives a trait from keccak256(seed || bigEndian(tokenID)).
//
// Digest layout: bytes 0..14 are the five colors, byte 15 picks shape0, byte
// 16 picks a distinct shape1, byte 17 picks the polygon arity.
type KeccakSource struct {
	Seed []byte
}

func (k KeccakSource) TraitFor(tokenID uint64) (art.Trait, error) {
	h := sha3.NewLegacyKeccak256()
	h.Write(k.Seed)
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], tokenID)
	h.Write(id[:])
	d := h.Sum(nil)

	var colors [art.NumTraitColors]art.Color
	for i := range colors {
		colors[i] = art.Color(uint32(d[3*i])<<16 | uint32(d[3*i+1])<<8 | uint32(d[3*i+2]))
	}
	s0 := int(d[15]) % len(toolShapes)
	s1 := (s0 + 1 + int(d[16])%(len(toolShapes)-1)) % len(toolShapes)
	return art.NewTrait(colors, toolShapes[s0], toolShapes[s1], polygonArities[int(d[17])%len(polygonArities)])
}
