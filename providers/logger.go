package providers

import (
	"time"

	"go.uber.org/zap"

	trust "github.com/ajudaki/trust"
)

// CallLogger records provider API calls. Configuration absence is an
// expected state and is logged at warning level only; transport failures
// are logged at error level.
type CallLogger struct {
	log *zap.Logger
}

// NewCallLogger creates a call logger backed by the given zap logger.
// A nil logger disables output.
func NewCallLogger(log *zap.Logger) *CallLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &CallLogger{log: log}
}

// NopCallLogger returns a logger that discards all entries.
func NopCallLogger() *CallLogger {
	return &CallLogger{log: zap.NewNop()}
}

// Skipped records a call that was skipped because credentials are absent.
func (l *CallLogger) Skipped(provider, operation, reason string) {
	l.log.Warn("provider call skipped",
		zap.String("provider", provider),
		zap.String("operation", operation),
		zap.String("reason", reason),
	)
}

// CallTimer times a single provider call.
type CallTimer struct {
	logger    *CallLogger
	provider  string
	operation string
	start     time.Time
	retries   int
}

// StartCall starts timing a provider call.
func (l *CallLogger) StartCall(provider, operation string) *CallTimer {
	return &CallTimer{
		logger:    l,
		provider:  provider,
		operation: operation,
		start:     time.Now(),
	}
}

// WithRetries records how many retries the call needed.
func (t *CallTimer) WithRetries(n int) *CallTimer {
	t.retries = n
	return t
}

// Success logs a completed call.
func (t *CallTimer) Success() {
	t.logger.log.Info("provider call completed",
		zap.String("provider", t.provider),
		zap.String("operation", t.operation),
		zap.Duration("duration", time.Since(t.start)),
		zap.Int("retries", t.retries),
	)
}

// Failure logs a failed call with its error category.
func (t *CallTimer) Failure(err error) {
	t.logger.log.Error("provider call failed",
		zap.String("provider", t.provider),
		zap.String("operation", t.operation),
		zap.Duration("duration", time.Since(t.start)),
		zap.Int("retries", t.retries),
		zap.String("category", string(trust.GetErrorCategory(err))),
		zap.Error(err),
	)
}
