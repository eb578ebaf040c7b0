package utils

import (
	"fmt"
	"reflect"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
)

func Convert[T any](value any) (T, error) {
	convertedValue, ok := value.(T)
	if !ok {
		return convertedValue, motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: %T", motmedelErrors.ErrConversionNotOk, value),
			value,
		)
	}

	return convertedValue, nil
}

// IsNil reports whether value is nil or a nil value of a nillable kind.
func IsNil(value any) bool {
	if value == nil {
		return true
	}

	switch reflectValue := reflect.ValueOf(value); reflectValue.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return reflectValue.IsNil()
	default:
		return false
	}
}
