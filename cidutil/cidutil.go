// Package cidutil derives the content identifiers used for token records and
// rendered documents: CIDv1, raw codec, sha2-256 multihash.
package cidutil

import (
	"errors"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ErrMismatch is returned by Verify when data does not hash to the expected CID.
var ErrMismatch = errors.New("cidutil: cid mismatch")

// Sum returns the CIDv1 (raw + sha2-256) of data.
func Sum(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// SumString is Sum formatted with the default multibase. It returns "" only if
// hashing fails, which sha2-256 with default length does not.
func SumString(data []byte) string {
	id, err := Sum(data)
	if err != nil {
		return ""
	}
	return id.String()
}

// Verify checks that data hashes to want.
func Verify(data []byte, want cid.Cid) error {
	if !want.Defined() {
		return ErrMismatch
	}
	got, err := Sum(data)
	if err != nil {
		return err
	}
	if !got.Equals(want) {
		return ErrMismatch
	}
	return nil
}
