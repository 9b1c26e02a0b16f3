// Package logger builds the slog loggers used across vectorwriter.
//
// New returns a *slog.Logger writing JSON or text. Options set the level, the
// output, static attributes and ContextExtractors that add request scoped
// values (such as a request id) to every record logged with a context.
//
// WithEnvironment picks defaults per deployment: text at debug level for
// development, JSON at info level for staging and production. Explicit
// options given after it win.
//
// WithRedaction passes every string and error value through a rewrite
// function before it is written. Runs install sanitizer.Redactor with the
// provider API key so the key never reaches a log sink, whichever call site
// logs it.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "vectorwriter"),
//	    logger.WithOutput(os.Stderr),
//	    logger.WithRedaction(sanitizer.Redactor(apiKey)),
//	)
//	log.InfoContext(ctx, "upserting batch",
//	    logger.Provider("qdrant"),
//	    logger.Batch(2, 3),
//	)
//
// The attribute helpers in attr.go keep key names consistent. Error returns
// an empty attribute for a nil error, which slog drops.
package logger
