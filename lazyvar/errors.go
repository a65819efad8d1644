package lazyvar

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned or raised by this package wraps exactly one of these, so
// callers can test for them with errors.Is.
var (
	ErrDuplicateDefinition     = errors.New("duplicate variable definition")
	ErrContextCollision        = errors.New("context property collision")
	ErrPrematureEvaluation     = errors.New("premature evaluation")
	ErrUnknownParentVariable   = errors.New("unknown parent variable")
	ErrUndefinedSharedBehavior = errors.New("undefined shared behavior")
	ErrDuplicateSharedBehavior = errors.New("duplicate shared behavior")
)

// Error is a failure reported by this package. Kind is one of the Err* values above and Name
// is the variable or shared behavior the failure is about.
type Error struct {
	Kind error
	Name string
	Msg  string
}

func newError(kind error, name string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Name: name, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }
