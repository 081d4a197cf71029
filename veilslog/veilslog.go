// Package veilslog bridges classified containers into log/slog.
//
// Containers already refuse to print their contents, so a handler that
// receives one emits the redaction marker. New builds a ReplaceAttr func
// that goes one step further and redacts container attrs through an
// engine, replacing them with the engine's output for their class:
//
//	engine, _ := b.Build()
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
//	    ReplaceAttr: veilslog.New(engine),
//	}))
//	logger.Info("login", "user", veil.NewSensitive("John Doe"))
//	// {"...","msg":"login","user":"********"}
//
// Only top-level attr values are rewritten. Containers nested inside
// struct attrs still marshal as markers through the handler's encoder.
package veilslog

import (
	"log/slog"
	"strings"

	"github.com/zoobzio/veil"
)

// New returns a slog ReplaceAttr func that redacts classified attr values
// through engine. Attrs that are not classified containers pass through
// untouched. When engine is nil or redaction fails, the attr is replaced
// with the class marker instead of the raw value.
func New(engine *veil.Engine) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if a.Value.Kind() != slog.KindAny {
			return a
		}
		cv, ok := a.Value.Any().(veil.Classified)
		if !ok {
			return a
		}

		if engine == nil {
			return slog.String(a.Key, veil.Marker(cv.DataClass()))
		}

		var sb strings.Builder
		if n, exact := engine.ExactLen(cv.DataClass()); exact {
			sb.Grow(n)
		}
		if err := engine.Redact(cv, &sb); err != nil {
			return slog.String(a.Key, veil.Marker(cv.DataClass()))
		}
		return slog.String(a.Key, sb.String())
	}
}
