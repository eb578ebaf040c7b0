package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState        = errors.New("invalid state")
	ErrEndCalled           = errors.New("end has already been called")
	ErrNilResponse         = errors.New("nil response")
	ErrNilTarget           = errors.New("nil target")
	ErrDeprecatedCallShape = errors.New("deprecated call shape")
)

// InvalidStateError is returned when headers are finalized after the response
// has ended.
type InvalidStateError struct {
	Operation string
}

func (invalidStateError *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState || target == ErrEndCalled
}

func (invalidStateError *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s", invalidStateError.Operation, ErrEndCalled.Error())
}

// DeprecationWarning describes a call that succeeded using a deprecated
// argument order. It is logged, not returned.
type DeprecationWarning struct {
	Operation string
	Shape     string
}

func (deprecationWarning *DeprecationWarning) Is(target error) bool {
	return target == ErrDeprecatedCallShape
}

func (deprecationWarning *DeprecationWarning) Error() string {
	return fmt.Sprintf(
		"%s: %s: %s",
		deprecationWarning.Operation,
		ErrDeprecatedCallShape.Error(),
		deprecationWarning.Shape,
	)
}
