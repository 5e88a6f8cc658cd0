package server

import (
	"io"
	"log/slog"
	"time"
)

// DefaultPort is the port the serve command listens on.
const DefaultPort = 8020

type Options struct {
	// Logger receives one info line per rewritten request.
	Logger *slog.Logger

	// ShutdownGrace bounds how long ListenAndServe waits for in-flight
	// requests once its context is cancelled.
	ShutdownGrace time.Duration

	// ReadHeaderTimeout is applied to the http.Server.
	ReadHeaderTimeout time.Duration
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		ShutdownGrace:     5 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = DefaultOptions().Logger
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = DefaultOptions().ShutdownGrace
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = DefaultOptions().ReadHeaderTimeout
	}
	return opts
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithShutdownGrace(d time.Duration) OptionFn {
	return func(o *Options) {
		o.ShutdownGrace = d
	}
}
