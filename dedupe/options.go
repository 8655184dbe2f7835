package dedupe

import (
	"log/slog"
	"time"
)

type options struct {
	logger  *slog.Logger
	workers int
	skip    SkipSet
	skipSet bool
	now     func() time.Time
	dryRun  bool
}

// Option configures the pipeline components.
type Option func(*options)

// WithLogger sets the logger used by every stage. The default discards
// all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets how many files the Detector hashes concurrently.
// Values below 1 mean sequential hashing.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithSkipSet sets the paths the Organizer must never move. Execute
// defaults to ExecutableSkipSet when this option is absent.
func WithSkipSet(skip SkipSet) Option {
	return func(o *options) {
		o.skip = skip
		o.skipSet = true
	}
}

// WithClock overrides the time source used for the index timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDryRun makes Execute stop after planning: no folders are created,
// nothing is moved and no index file is written.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  slog.New(slog.DiscardHandler),
		workers: 1,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}
