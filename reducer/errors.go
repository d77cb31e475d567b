package reducer

import (
	"errors"
	"fmt"
)

var (
	ErrResource = errors.New("resource error")
	ErrParse    = errors.New("parse error")
	ErrBounds   = errors.New("bounds error")
	ErrOverflow = errors.New("integer overflow")
)

// ParseError reports a non-blank line that is not a valid int32, or a block
// whose running sum leaves the int32 range.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

type BoundsError struct {
	Want int
	Have int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("need %d blocks, have %d", e.Want, e.Have)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}

// ResourceError wraps failures to open or read an input.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func (e *ResourceError) Is(target error) bool {
	return target == ErrResource
}
