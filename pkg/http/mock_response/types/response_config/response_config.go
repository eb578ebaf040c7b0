package response_config

import (
	"log/slog"

	"github.com/Motmedel/mock_http_go/pkg/event/emitter"
	"github.com/Motmedel/mock_http_go/pkg/http/mime"
	"github.com/Motmedel/mock_http_go/pkg/http/status"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/mime_resolver"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/notifier"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/sink"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/status_phraser"
	"github.com/Motmedel/mock_http_go/pkg/io/null_sink"
	motmedelLog "github.com/Motmedel/mock_http_go/pkg/log"
)

type Config struct {
	Notifier      notifier.Notifier
	MimeResolver  mime_resolver.Resolver
	StatusPhraser status_phraser.Phraser
	Sink          sink.Sink
	Logger        *slog.Logger
	Locals        map[string]any
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{}
	for _, option := range options {
		if option != nil {
			option(config)
		}
	}

	if config.Logger == nil {
		config.Logger = motmedelLog.New(slog.Default().Handler())
	}
	if config.Notifier == nil {
		config.Notifier = &emitter.Emitter{Logger: config.Logger}
	}
	if config.MimeResolver == nil {
		config.MimeResolver = &mime.Resolver{}
	}
	if config.StatusPhraser == nil {
		config.StatusPhraser = &status.Phraser{}
	}
	if config.Sink == nil {
		config.Sink = &null_sink.Sink{}
	}
	if config.Locals == nil {
		config.Locals = make(map[string]any)
	}

	return config
}

func WithNotifier(notifier notifier.Notifier) Option {
	return func(config *Config) {
		config.Notifier = notifier
	}
}

func WithMimeResolver(resolver mime_resolver.Resolver) Option {
	return func(config *Config) {
		config.MimeResolver = resolver
	}
}

func WithStatusPhraser(phraser status_phraser.Phraser) Option {
	return func(config *Config) {
		config.StatusPhraser = phraser
	}
}

func WithSink(sink sink.Sink) Option {
	return func(config *Config) {
		config.Sink = sink
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(config *Config) {
		config.Logger = logger
	}
}

func WithLocals(locals map[string]any) Option {
	return func(config *Config) {
		config.Locals = locals
	}
}
