package isla

import "fmt"

// BadHeaderError is raised by both decoders when the magic header does
// not match.
type BadHeaderError struct {
	Got string
}

func (e *BadHeaderError) Error() string {
	return fmt.Sprintf("isla: bad header: %q", e.Got)
}

// NestingTooDeepError is raised by the text decoder when a line opens more
// levels than the current scope permits.
type NestingTooDeepError struct {
	Expected int
	Line     int
}

func (e *NestingTooDeepError) Error() string {
	return fmt.Sprintf("isla: nesting too deep at line %d (expected level %d)", e.Line, e.Expected)
}

// ExpectedListItemError is raised by the text decoder when a list scope
// contains a line that is not a list item.
type ExpectedListItemError struct {
	Line int
}

func (e *ExpectedListItemError) Error() string {
	return fmt.Sprintf("isla: expected list item at line %d", e.Line)
}

// UnexpectedAfterColonError is raised when a map line's `:` operator is
// followed by any trailing text, whitespace included.
type UnexpectedAfterColonError struct {
	Line    int
	Trailer string
}

func (e *UnexpectedAfterColonError) Error() string {
	return fmt.Sprintf("isla: unexpected text %q after ':' at line %d", e.Trailer, e.Line)
}

// UnterminatedMultiLineValueError is raised when a multi-line string is
// opened but never closed before EOF.
type UnterminatedMultiLineValueError struct {
	OpenLine int
}

func (e *UnterminatedMultiLineValueError) Error() string {
	return fmt.Sprintf("isla: unterminated multi-line value opened at line %d", e.OpenLine)
}

// ExpectedScopeBeforeEOFError reports input that ends in the middle of a
// construct that requires more lines. The text decoder in this package
// does not return it: a scope that reaches EOF before its first content
// line decodes to none.
type ExpectedScopeBeforeEOFError struct {
	Line int
}

func (e *ExpectedScopeBeforeEOFError) Error() string {
	return fmt.Sprintf("isla: expected scope content before EOF at line %d", e.Line)
}

// InvalidTypeError is raised by the binary decoder when a value header's
// type nibble is not leaf/list/map.
type InvalidTypeError struct {
	Tag byte
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("isla: invalid binary type tag %#x", e.Tag)
}

// DecodeOutOfBoundsError is raised by the binary decoder whenever a read
// would run past the end of the input.
type DecodeOutOfBoundsError struct {
	What      string
	Needed    int
	Remaining int
}

func (e *DecodeOutOfBoundsError) Error() string {
	return fmt.Sprintf("isla: decode out of bounds reading %s: needed %d, remaining %d", e.What, e.Needed, e.Remaining)
}

// EncodeTooLongError is raised by the binary encoder when a leaf, list,
// map, or key length exceeds the format's length budget.
type EncodeTooLongError struct {
	What string
	Len  int64
	Max  int64
}

func (e *EncodeTooLongError) Error() string {
	return fmt.Sprintf("isla: %s too long to encode: %d exceeds max %d", e.What, e.Len, e.Max)
}

// NotEncodableError is raised by the text encoder when the top-level Value
// is not a list or a map, and by the binary encoder when it is none.
type NotEncodableError struct {
	Reason string
}

func (e *NotEncodableError) Error() string {
	return fmt.Sprintf("isla: not encodable: %s", e.Reason)
}

// TypeMismatchError is raised by Value accessors when the requested
// payload does not match the Value's actual Kind.
type TypeMismatchError struct {
	Requested Kind
	Actual    Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("isla: type mismatch: requested %s, value is %s", e.Requested, e.Actual)
}

// ListIndexOutOfRangeError is raised by list accessors for an index outside
// [0, length).
type ListIndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *ListIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("isla: list index %d out of range (length %d)", e.Index, e.Length)
}

// MapKeyNotFoundError is raised by map accessors when the key is absent.
type MapKeyNotFoundError struct {
	Key string
}

func (e *MapKeyNotFoundError) Error() string {
	return fmt.Sprintf("isla: map key %q not found", e.Key)
}
