package maps

import (
	"fmt"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	"github.com/Motmedel/mock_http_go/pkg/utils"
)

func MapGet[T comparable, U any](m map[T]U, key T) (U, error) {
	var zero U

	if m == nil {
		return zero, motmedelErrors.NewWithTrace(motmedelErrors.ErrNilMap)
	}

	v, ok := m[key]
	if !ok {
		return zero, motmedelErrors.NewWithTrace(fmt.Errorf("%w: %v", motmedelErrors.ErrNotInMap, key), key)
	}

	return v, nil
}

func MapGetConvert[U any, T comparable](m map[T]any, key T) (U, error) {
	var zero U

	v, err := MapGet(m, key)
	if err != nil {
		return zero, fmt.Errorf("map get: %w", err)
	}

	cv, err := utils.Convert[U](v)
	if err != nil {
		return zero, fmt.Errorf("convert: %w", err)
	}

	return cv, nil
}
