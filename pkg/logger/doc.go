// Package logger builds the process-wide slog.Logger.
//
// Records are written as JSON (or text) to stdout and, when a Sentry DSN is
// configured, forwarded to Sentry: errors become events, records at or above
// the configured minimum level are stored as logs.
//
// Request-scoped values are attached through [ContextExtractor] functions
// evaluated on every record:
//
//	log, err := logger.New(os.Stdout, cfg.Log, api.RequestIDExtractor())
//	if err != nil {
//	    return err
//	}
//	log.InfoContext(r.Context(), "converted", slog.String("op", "to_ascii"))
//	// {"level":"INFO","msg":"converted","op":"to_ascii","request_id":"..."}
//
// Use [FlushSentry] as a shutdown hook so buffered events are not lost.
package logger
