package log

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	motmedelContext "github.com/Motmedel/mock_http_go/pkg/context"
	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	"github.com/spf13/cast"
)

type ContextExtractor interface {
	Handle(context.Context, *slog.Record) error
}

type ContextExtractorFunction func(context.Context, *slog.Record) error

func (cef ContextExtractorFunction) Handle(ctx context.Context, record *slog.Record) error {
	return cef(ctx, record)
}

type ContextHandler struct {
	Next       slog.Handler
	Extractors []ContextExtractor
}

func (contextHandler *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return contextHandler.Next.Enabled(ctx, level)
}

func (contextHandler *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, extractor := range contextHandler.Extractors {
		if extractor != nil {
			if err := extractor.Handle(ctx, &record); err != nil {
				return fmt.Errorf("extractor handle: %w", err)
			}
		}
	}
	return contextHandler.Next.Handle(ctx, record)
}

func (contextHandler *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Next: contextHandler.Next.WithAttrs(attrs), Extractors: contextHandler.Extractors}
}

func (contextHandler *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Next: contextHandler.Next.WithGroup(name), Extractors: contextHandler.Extractors}
}

type ErrorContextExtractor struct {
	SkipCause      bool
	SkipInput      bool
	SkipStackTrace bool
}

func makeTextualRepresentation(value any) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprintf("%#v", value)
}

func (extractor *ErrorContextExtractor) MakeErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}

	var attrs []any

	switch errType := reflect.TypeOf(err).String(); errType {
	case "*errors.ExtendedError", "*errors.errorString", "*fmt.wrapError":
	default:
		attrs = append(attrs, slog.String("type", errType))
	}

	if inputError, ok := err.(motmedelErrors.InputErrorI); ok && !extractor.SkipInput {
		if input := inputError.GetInput(); input != nil {
			attrs = append(
				attrs,
				slog.Group(
					"input",
					slog.String("value", makeTextualRepresentation(input)),
					slog.String("type", reflect.TypeOf(input).String()),
				),
			)
		}
	}

	if !extractor.SkipCause {
		if wrappedErrors := motmedelErrors.CollectWrappedErrors(err); len(wrappedErrors) != 0 {
			// The innermost error is the root cause.
			if cause := wrappedErrors[len(wrappedErrors)-1]; cause.Error() != err.Error() {
				attrs = append(attrs, slog.Group("cause", extractor.MakeErrorAttrs(cause)...))
			}
		}
	}

	if stackTraceError, ok := err.(motmedelErrors.StackTraceErrorI); ok && !extractor.SkipStackTrace {
		if stackTrace := stackTraceError.GetStackTrace(); stackTrace != "" {
			attrs = append(attrs, slog.String("stack_trace", stackTrace))
		}
	}

	if message := err.Error(); message != "" {
		attrs = append(attrs, slog.String("message", message))
	}

	return attrs
}

func (extractor *ErrorContextExtractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	if logErr := motmedelContext.GetError(ctx); logErr != nil {
		record.Add(slog.Group("error", extractor.MakeErrorAttrs(logErr)...))
	}

	return nil
}

func New(handler slog.Handler, extractors ...ContextExtractor) *slog.Logger {
	if len(extractors) == 0 {
		extractors = []ContextExtractor{&ErrorContextExtractor{}}
	}
	return slog.New(&ContextHandler{Next: handler, Extractors: extractors})
}

func LogWarning(ctx context.Context, logger *slog.Logger, message string, err error, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger.WarnContext(motmedelContext.WithError(ctx, err), message, args...)
}

func LogDebug(ctx context.Context, logger *slog.Logger, message string, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger.DebugContext(ctx, message, args...)
}
