// Package dot renders hook progress as a compact stream of symbols:
// a dot per examined file, a marker per fix or violation, a newline when
// the run completes.
package dot

import (
	"context"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var _ slog.Handler = (*dotHandler)(nil)

type dotHandler struct {
	handler slog.Handler
	stdout  io.Writer
}

// New wraps h. Enabled is delegated to h; records are rendered as symbols
// instead of being passed through.
func New(h slog.Handler) *dotHandler {
	return &dotHandler{
		handler: h,
		stdout:  colorable.NewColorableStdout(),
	}
}

func (h *dotHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *dotHandler) Handle(ctx context.Context, r slog.Record) error {
	switch r.Message {
	case "checked file":
		return h.write(gray("."))
	case "fixed file":
		return h.write(yellow("+"))
	case "would fix file":
		return h.write(cyan("~"))
	case "violation found":
		return h.write(red("!"))
	case "run completed":
		return h.write("\n")
	}
	return nil
}

func (h *dotHandler) write(s string) error {
	_, err := h.stdout.Write([]byte(s))
	return err
}

func (h *dotHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dotHandler{handler: h.handler.WithAttrs(attrs), stdout: h.stdout}
}

func (h *dotHandler) WithGroup(name string) slog.Handler {
	return &dotHandler{handler: h.handler.WithGroup(name), stdout: h.stdout}
}
