package logging

import (
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap/zapcore"
)

const (
	BackendZap  = "zap"
	BackendSlog = "slog"
)

// New returns a Logger for the named backend writing to w. Level names are
// debug, info, warn and error; "" means info.
func New(backend string, w io.Writer, level string) (Logger, error) {
	if level == "" {
		level = "info"
	}

	switch backend {
	case BackendZap, "":
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return NewZapJSON(w, lvl), nil
	case BackendSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return NewSlogText(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
