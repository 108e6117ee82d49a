package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

const (
	CompTmux    = "tmux"
	CompBrowser = "browser"
	CompConfig  = "config"
	CompUI      = "ui"
)

var root atomic.Pointer[slog.Handler]

func init() {
	discard := slog.Handler(slog.NewJSONHandler(io.Discard, nil))
	root.Store(&discard)
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// Setup routes every component logger to a JSON file at path. An empty
// path discards. The returned closer releases the file.
func Setup(path string, level slog.Level) (io.Closer, error) {
	if path == "" {
		discard := slog.Handler(slog.NewJSONHandler(io.Discard, nil))
		root.Store(&discard)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetHandler(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return f, nil
}

// SetHandler swaps the destination for all loggers, including ones created
// earlier by ForComponent.
func SetHandler(h slog.Handler) {
	root.Store(&h)
}

func ForComponent(name string) *slog.Logger {
	return slog.New(&lazyHandler{}).With(slog.String("component", name))
}

// lazyHandler resolves the root handler on every call so package-level
// loggers follow a later Setup.
type lazyHandler struct {
	ops []func(slog.Handler) slog.Handler
}

func (h *lazyHandler) resolve() slog.Handler {
	out := *root.Load()
	for _, op := range h.ops {
		out = op(out)
	}
	return out
}

func (h *lazyHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return (*root.Load()).Enabled(ctx, l)
}

func (h *lazyHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

func (h *lazyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

func (h *lazyHandler) WithGroup(name string) slog.Handler {
	return h.with(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

func (h *lazyHandler) with(op func(slog.Handler) slog.Handler) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &lazyHandler{ops: append(ops, op)}
}
