// Package logger builds context-aware slog loggers with consistent
// attribute naming for gate decisions, quota checks, and rate limiting.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static
// attributes applied to every record, and ContextExtractor callbacks
// that pull request-scoped values (a request id, a user id) out of the
// context on every Handle call.
//
//	log := logger.New(
//	    logger.WithProduction("gatekeeper"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "export allowed",
//	    logger.UserID(userID),
//	    logger.Feature("exports"),
//	    logger.PlanTier("premium"),
//	)
//
// Attribute helpers in attr.go keep key names uniform across packages;
// Error and Errors produce attributes only for non-nil errors so they
// can be passed unconditionally.
package logger
