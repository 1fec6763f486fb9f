package shim

import (
	"io"
	"log/slog"
	"time"
)

// DefaultMode is the mode reported for files and directories unless
// WithModes overrides it.
const DefaultMode uint32 = 0o666

type options struct {
	parentCheck    bool
	existenceCheck bool
	fileMode       uint32
	dirMode        uint32
	logger         *slog.Logger
	timeout        time.Duration
}

func defaultOptions() options {
	return options{
		parentCheck:    true,
		existenceCheck: true,
		fileMode:       DefaultMode,
		dirMode:        DefaultMode,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures an FS.
type Option func(*options)

// WithParentCheck toggles the check that the parent directory exists before
// Mkdir, WriteFile and Rename. Enabled by default.
func WithParentCheck(enabled bool) Option {
	return func(o *options) {
		o.parentCheck = enabled
	}
}

// WithExistenceCheck toggles the existence, type and emptiness checks made
// before mutating the store. When disabled the store's own error is
// relabelled instead. Enabled by default.
func WithExistenceCheck(enabled bool) Option {
	return func(o *options) {
		o.existenceCheck = enabled
	}
}

// WithModes sets the mode reported by Stat for files and directories.
func WithModes(file, dir uint32) Option {
	return func(o *options) {
		o.fileMode = file
		o.dirMode = dir
	}
}

// WithLogger traces every call at debug level. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = logger
	}
}

// WithTimeout bounds each operation, including the wait for the gate.
// Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}
