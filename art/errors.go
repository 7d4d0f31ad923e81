package art

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindRange         Kind = "RangeError"
	KindInvalidShape  Kind = "InvalidShape"
	KindInvalidStroke Kind = "InvalidStroke"
	KindInvalidPoints Kind = "InvalidPoints"
	KindInvalidColor  Kind = "InvalidColor"
	KindInternal      Kind = "Internal"
)

// Rule identifiers. These are stable across versions and name the violated
// rule, not the call site.
const (
	RuleCoordinateRange = "ART-RANGE-001"
	RuleColorRange      = "ART-RANGE-002"
	RuleStrokeRange     = "ART-RANGE-003"
	RulePointCountRange = "ART-RANGE-004"
	RuleShapeRange      = "ART-RANGE-005"

	RuleOverflowLength = "ART-WIRE-001"

	RuleShapeDefined = "ART-STR-001"
	RuleShapePoints  = "ART-STR-002"
	RuleShapeStroke  = "ART-STR-003"

	RuleTraitColor   = "ART-AUTH-001"
	RuleTraitShape   = "ART-AUTH-002"
	RuleTraitPolygon = "ART-AUTH-003"

	RuleTraitArity  = "ART-TRAIT-001"
	RuleTraitShapes = "ART-TRAIT-002"
	RuleTraitColors = "ART-TRAIT-003"

	ruleNilApply = "ART-INTERNAL-001"
)

// Error is the package's structured error type.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// wrapError keeps the Kind and RuleID of a structured cause so that batch
// callers still see the first violated rule.
func wrapError(msg string, cause error) error {
	var e *Error
	if !errors.As(cause, &e) {
		return &Error{Kind: KindInternal, RuleID: "", Message: msg + ": " + cause.Error(), Cause: cause}
	}
	return &Error{Kind: e.Kind, RuleID: e.RuleID, Message: msg + ": " + e.Message, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of a structured error, or "" if unknown.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
