package context

import (
	"context"
)

type errorContextType struct{}

var ErrorContextKey errorContextType

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, ErrorContextKey, err)
}

func GetError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	err, _ := ctx.Value(ErrorContextKey).(error)
	return err
}
