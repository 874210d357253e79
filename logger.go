package sgview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silentHandler drops every record. Enabled is always false, so callers
// never build the attributes of a disabled message.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (silentHandler) WithAttrs([]slog.Attr) slog.Handler        { return silentHandler{} }
func (silentHandler) WithGroup(string) slog.Handler             { return silentHandler{} }

var silent = slog.New(silentHandler{})

// current is shared by sg, viewport and proxy. Frames may be driven from
// a different goroutine than the one configuring logging.
var current atomic.Pointer[slog.Logger]

func init() { current.Store(silent) }

// SetLogger installs l for the whole module. Nil restores the default,
// which discards everything.
//
// Messages are prefixed with the package that logs them ("sg:",
// "viewport:", "proxy:"). Levels:
//   - [slog.LevelDebug]: per-frame detail such as deferred updates, layer
//     allocations and proxy rebinds
//   - [slog.LevelInfo]: viewport completion and scene graph invalidation
//   - [slog.LevelWarn]: failed commits, a second root viewport on one
//     output, a proxy asked to show itself
//
// To see everything on stderr:
//
//	sgview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the installed logger. It never returns nil.
func Logger() *slog.Logger {
	return current.Load()
}
