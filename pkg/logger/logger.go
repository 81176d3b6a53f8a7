package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

const envProduction = "production"

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithComponent returns a child logger tagging every record with component=name.
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryDSN string
	Output    io.Writer
}

// Impl fans every record out to zerolog and, when a DSN is configured, to Sentry.
type Impl struct {
	*slog.Logger
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := slog.LevelDebug
	var zl zerolog.Logger
	if opts.Env == envProduction {
		level = slog.LevelInfo
		zl = zerolog.New(out).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentry init failed: %v\n", err)
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{Logger: slog.New(slogmulti.Fanout(handlers...))}
}

// NewNop returns a logger that drops everything. Meant for tests.
func NewNop() *Impl {
	return &Impl{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{Logger: l.Logger.With("component", name)}
}

// Printf lets Impl back fx.Logger.
func (l *Impl) Printf(format string, args ...any) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Flush waits for buffered Sentry events to be delivered.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
