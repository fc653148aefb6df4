package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Level  string
	Format string // "text" | "json"
	File   string // empty: stderr
}

// New builds the application logger. The returned closer releases the log file, if any.
func New(opt Options) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	var closer io.Closer = nopCloser{}
	if opt.File != "" {
		f, err := os.OpenFile(opt.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		l.SetOutput(f)
		closer = f
	}

	if opt.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339})
	}

	l.SetLevel(logrus.WarnLevel)
	if opt.Level != "" {
		if lvl, err := logrus.ParseLevel(opt.Level); err == nil {
			l.SetLevel(lvl)
		}
	}
	return l, closer, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Component tags entries with the emitting package.
func Component(l logrus.FieldLogger, name string) *logrus.Entry {
	return l.WithField("component", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
