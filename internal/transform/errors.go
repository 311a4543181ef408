package transform

import (
	"errors"
	"fmt"

	"stylename/internal/source"
)

var (
	ErrEmptyInitializer   = errors.New("initializer expression is empty")
	ErrDuplicateStyleName = errors.New("duplicate style attribute")
)

// EmptyInitializerError means an attribute value was "{}" where an
// expression is required.
type EmptyInitializerError struct {
	Attribute string
	Span      source.Span
}

func (e *EmptyInitializerError) Error() string {
	return fmt.Sprintf("%s: initializer expression is empty", e.Attribute)
}

func (e *EmptyInitializerError) Is(target error) bool { return target == ErrEmptyInitializer }

// DuplicateStyleNameError means one group carries the style attribute twice.
type DuplicateStyleNameError struct {
	Attribute     string
	First, Second source.Span
}

func (e *DuplicateStyleNameError) Error() string {
	return fmt.Sprintf("attribute %s is given more than once", e.Attribute)
}

func (e *DuplicateStyleNameError) Is(target error) bool { return target == ErrDuplicateStyleName }
