package app

import (
	"errors"

	"cosmossdk.io/log"

	mailboxtypes "github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
)

// ReplayLoggerWrapper wraps a logger to change the log level of rejected
// process calls for messages that were already delivered. Relayers race to
// deliver the same message, so those rejections are logged at DEBUG instead
// of INFO.
type ReplayLoggerWrapper struct {
	logger log.Logger
}

// NewReplayLoggerWrapper creates a new logger wrapper that downgrades replay logs.
func NewReplayLoggerWrapper(logger log.Logger) log.Logger {
	return &ReplayLoggerWrapper{logger: logger}
}

// Info logs an info message, but downgrades replayed deliveries to debug level.
func (l *ReplayLoggerWrapper) Info(msg string, keyvals ...any) {
	if l.isReplay(keyvals...) {
		l.logger.Debug(msg, keyvals...)
		return
	}
	l.logger.Info(msg, keyvals...)
}

// isReplay checks whether the err value of keyvals is an already delivered error.
func (l *ReplayLoggerWrapper) isReplay(keyvals ...any) bool {
	for i := 0; i < len(keyvals)-1; i += 2 {
		if key, ok := keyvals[i].(string); ok && key == "err" {
			if err, ok := keyvals[i+1].(error); ok {
				return errors.Is(err, mailboxtypes.ErrAlreadyDelivered)
			}
		}
	}
	return false
}

// Debug passes through to the underlying logger
func (l *ReplayLoggerWrapper) Debug(msg string, keyvals ...any) {
	l.logger.Debug(msg, keyvals...)
}

// Error passes through to the underlying logger
func (l *ReplayLoggerWrapper) Error(msg string, keyvals ...any) {
	l.logger.Error(msg, keyvals...)
}

// Warn passes through to the underlying logger
func (l *ReplayLoggerWrapper) Warn(msg string, keyvals ...any) {
	l.logger.Warn(msg, keyvals...)
}

// With passes through to the underlying logger
func (l *ReplayLoggerWrapper) With(keyvals ...any) log.Logger {
	return &ReplayLoggerWrapper{logger: l.logger.With(keyvals...)}
}

// Impl returns the underlying logger implementation
func (l *ReplayLoggerWrapper) Impl() any {
	return l.logger.Impl()
}
