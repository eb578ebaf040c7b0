package mismatch_error

import "fmt"

type Error struct {
	Field    string
	Expected any
	Got      any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s mismatch: expected %v, got %v", e.Field, e.Expected, e.Got)
}

func New(field string, expected any, got any) *Error {
	return &Error{Field: field, Expected: expected, Got: got}
}
