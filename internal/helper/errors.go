package helper

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedStyleName matches every *UndefinedStyleNameError.
	ErrUndefinedStyleName = errors.New("stylename is undefined")
	// ErrNotInstalled is returned when a module slot has no implementation.
	ErrNotInstalled = errors.New("helper is not installed")
)

// UndefinedStyleNameError is raised when the value, or one of its elements,
// is undefined. Index is -1 for the value itself.
type UndefinedStyleNameError struct {
	Index int
}

func (e *UndefinedStyleNameError) Error() string {
	if e.Index < 0 {
		return "stylename is undefined"
	}
	return fmt.Sprintf("one of stylenames is undefined (index %d)", e.Index)
}

func (e *UndefinedStyleNameError) Is(target error) bool {
	return target == ErrUndefinedStyleName
}
