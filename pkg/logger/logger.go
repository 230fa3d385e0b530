// Package logger owns the process-wide zerolog instance. Call Init once in
// main and hand the returned logger down; Get exists for code that cannot be
// reached by injection.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects output format and verbosity at startup.
type Options struct {
	// Level names the minimum level to emit: trace, debug, info, warn or
	// error. Anything else falls back to info.
	Level string
	// Pretty switches to the console writer for local development; leave
	// false to log JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the singleton. Repeated calls return the logger from the first
// call unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil || level == zerolog.NoLevel {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)

		instance = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
		initialized = true
	})
	return instance
}

// Get returns the singleton logger and panics when Init has not run yet.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get called before Init")
	}
	return instance
}

// Reset discards the singleton so tests can Init again with fresh options.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}
