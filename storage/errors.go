package storage

import "errors"

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrInvalidCID  = errors.New("storage: invalid cid")
	ErrCIDMismatch = errors.New("storage: cid mismatch")
	ErrImmutable   = errors.New("storage: immutable object mismatch")
	ErrMalformed   = errors.New("storage: malformed record")
	ErrExists      = errors.New("storage: token already exists")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
