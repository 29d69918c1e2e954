package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Writer is an io.Writer that forwards subprocess output lines to slog,
// tagged with the operation that produced them.
type Writer struct {
	logger *slog.Logger
	level  slog.Level
	op     string
}

// NewWriter constructs a Writer bound to the provided logger and level.
func NewWriter(logger *slog.Logger, level slog.Level, op string) *Writer {
	return &Writer{logger: logger, level: level, op: op}
}

// Write logs each line of p at the configured level. It always reports the
// full length as written so it is safe inside an io.MultiWriter.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			w.logger.Log(context.Background(), w.level, "tool output", "op", w.op, "line", line)
		}
	}
	return len(p), nil
}
