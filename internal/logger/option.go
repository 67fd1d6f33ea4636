package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// leveledCore wraps a zapcore.Core and applies its own minimum level.
type leveledCore struct {
	zapcore.Core

	// level is the minimum log level for this core to process messages.
	level zapcore.Level
}

// Enabled reports whether entries at l pass this core's own level.
func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds the core to a checked entry when the entry level is enabled.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// With returns a copy of the core with added fields and the same level.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{
		c.Core.With(fields),
		c.level,
	}
}

// WithLevel is an option that raises or lowers the level of an existing logger.
// The CLI uses it for --quiet, which keeps only errors.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(
		func(core zapcore.Core) zapcore.Core {
			return &leveledCore{core, lvl}
		})
}
