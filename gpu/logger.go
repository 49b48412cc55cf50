package gpu

import (
	"log/slog"

	"github.com/gogpu/glow"
)

// slogger returns the package logger. All logging in this package goes
// through here; the logger is shared with the parent package, so
// glow.SetLogger configures both.
func slogger() *slog.Logger { return glow.Logger() }
