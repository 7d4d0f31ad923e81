package model

import (
	"errors"
	"fmt"
	"strings"

	"xdao.co/paint/art"
	"xdao.co/paint/storage"
)

type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyMinted  ErrorCode = "ALREADY_MINTED"
	ErrRange          ErrorCode = "RANGE_ERROR"
	ErrInvalidShape   ErrorCode = "INVALID_SHAPE"
	ErrInvalidStroke  ErrorCode = "INVALID_STROKE"
	ErrInvalidPoints  ErrorCode = "INVALID_POINTS"
	ErrInvalidColor   ErrorCode = "INVALID_COLOR"
	ErrCIDMismatch    ErrorCode = "CID_MISMATCH"
	ErrInternal       ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
// Rule is set for object rejections.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Rule    string    `json:"rule,omitempty"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

var kindCodes = map[art.Kind]ErrorCode{
	art.KindRange:         ErrRange,
	art.KindInvalidShape:  ErrInvalidShape,
	art.KindInvalidStroke: ErrInvalidStroke,
	art.KindInvalidPoints: ErrInvalidPoints,
	art.KindInvalidColor:  ErrInvalidColor,
}

const traitRulePrefix = "ART-TRAIT-"

// FromError classifies err. Unknown errors become INTERNAL.
func FromError(err error) *CodedError {
	var ce *CodedError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, storage.ErrNotFound):
		return NewError(ErrNotFound, err.Error())
	case errors.Is(err, storage.ErrExists):
		return NewError(ErrAlreadyMinted, err.Error())
	case errors.Is(err, storage.ErrCIDMismatch), errors.Is(err, storage.ErrImmutable):
		return NewError(ErrCIDMismatch, err.Error())
	case errors.Is(err, storage.ErrMalformed):
		// Stored art that no longer passes acceptance is a server fault.
		return NewError(ErrInternal, err.Error())
	case strings.HasPrefix(art.RuleID(err), traitRulePrefix):
		// Traits come from the server's trait source, never from a request.
		return NewError(ErrInternal, err.Error())
	}
	if code, ok := kindCodes[art.KindOf(err)]; ok {
		return &CodedError{Code: code, Rule: art.RuleID(err), Message: err.Error()}
	}
	return NewError(ErrInternal, err.Error())
}
