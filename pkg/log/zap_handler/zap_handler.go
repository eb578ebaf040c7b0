// Package zap_handler forwards slog records to a zap logger.
package zap_handler

import (
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// New returns a slog handler writing to the core of logger. A nil logger
// discards every record.
func New(logger *zap.Logger, options ...zapslog.HandlerOption) *zapslog.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return zapslog.NewHandler(logger.Core(), options...)
}
