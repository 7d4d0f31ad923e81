// Package art implements the packed drawing-object format used by paint tokens.
//
// It covers three concerns that must agree byte-for-byte with stored data:
//
//   - the codec between decoded objects and the packed wire form
//     (a 256-bit base word plus an overflow byte buffer);
//   - structural validation of decoded objects;
//   - authorization of objects against a token's immutable Trait.
//
// Everything in this package is pure and deterministic. Persistence and
// token lifecycle are the caller's responsibility.
package art
