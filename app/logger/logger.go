package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lysyi3m/feed-archiver/app/cfg"
)

// New builds the process logger for one of the cfg.LogFormat* formats.
func New(w io.Writer, format string, debug bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.LevelKey {
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case cfg.LogFormatText, "":
		handler = slog.NewTextHandler(w, opts)
	case cfg.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), nil
}

// Init installs the logger as the slog default. Call once at startup.
func Init(w io.Writer, format string, debug bool) error {
	log, err := New(w, format, debug)
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	return nil
}
