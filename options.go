package cacheext

import (
	"log/slog"

	"github.com/rs/xid"
)

// Options contains configuration options for a Policy.
type Options struct {
	// Logger receives diagnostic records from the hooks.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Metrics receives operational counters from the hooks.
	// If nil, metrics collection is disabled.
	Metrics *Metrics

	// InstanceID identifies the policy instance in log records. Useful
	// when a host runs several instances side by side. If empty, a
	// unique id is generated.
	InstanceID string
}

// Option is a functional option for configuring a Policy.
type Option func(*Options)

// WithLogger configures the policy to emit diagnostics through the given
// logger. The policy logs absorbed failures at warn level and per-event
// traces at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = log
	}
}

// WithMetrics configures the policy to record operational counters into
// the given Metrics instance.
func WithMetrics(metrics *Metrics) Option {
	return func(opts *Options) {
		opts.Metrics = metrics
	}
}

// WithInstanceID overrides the generated instance id attached to log
// records.
func WithInstanceID(id string) Option {
	return func(opts *Options) {
		opts.InstanceID = id
	}
}

// newInstanceID generates a unique identifier for a policy instance.
func newInstanceID() string {
	return xid.New().String()
}
