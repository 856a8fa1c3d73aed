// Package logging configures log/slog for kubedrive and kubedrived.
//
// Every process logs JSON to stderr with its module name and version
// attached. The level comes from LOG_LEVEL (debug, info, warn or error,
// case-insensitive, info when unset) unless a caller passes one explicitly,
// as the CLI does for --log-level. Debug loggers also record the source
// location of each call.
//
//	logging.SetDefaultStructuredLogger("kubedrived", version)
//	slog.Info("server listening", "address", addr)
//
//	LOG_LEVEL=debug kubedrive apply -f app.yaml
//
// A debug line looks like:
//
//	{"time":"2026-03-02T10:30:00.123Z","level":"DEBUG","source":{...},"msg":"kubectl command","module":"kubedrive","version":"v0.4.0","command":"kubectl --context prod ... apply --filename - < <manifest>"}
//
// NewLogLogger bridges code that only accepts a *log.Logger, such as
// http.Server.ErrorLog, onto the same handler. Progress events from kubectl
// can be sent to the logger with event.NewLogSink.
package logging
