package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingFileOptions sizes the rotating log file.
type RotatingFileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewWriter returns the log sink. With an empty path it is stderr; otherwise
// output goes to both stderr and a size-rotated file. The returned closer is a
// no-op for plain stderr.
func NewWriter(opts RotatingFileOptions) (io.Writer, io.Closer) {
	if opts.Path == "" {
		return os.Stderr, nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(os.Stderr, file), file
}

// NewLogger builds the JSON logger used across the service.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
