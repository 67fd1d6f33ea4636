// Package logger wraps zap to provide:
//   - a global sugared logger writing to stderr with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and per-logger level overrides,
//   - convenience functions (Infof, WarnKV, etc.).
//
// Generation runs carry the logger in their context, so every step of a run
// logs under the same name and key-value pairs.
package logger
