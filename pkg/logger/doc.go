// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New is the single factory. It builds a slog.TextHandler or
// slog.JSONHandler depending on the configured Format and, when context
// extractors are registered, wraps it so every ContextExtractor runs before
// the record is written. Discard returns a logger that drops
// everything and is the default for components that accept an optional
// logger.
//
// Helper constructors in attr.go keep attribute keys consistent: Field,
// Record, Reason and ValidationGroup describe binding and validation events,
// while Error and Errors produce attributes only for non-nil errors so that
//
//	log.Debug("field failed to load", logger.Field("age"), logger.Error(err))
//
// needs no nil check.
//
// # Usage
//
//	import "github.com/dmitrymomot/formkit/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithEnvironment(os.Getenv("FORMKIT_ENV"), "formkit"),
//	        logger.WithContextValue("file", ctxKeyFile),
//	    )
//	    slog.SetDefault(log)
//	}
//
// # Configuration
//
//   - WithEnvironment sets per-environment defaults.
//   - WithFormat overrides the output format; ParseFormat reads one from
//     configuration.
//   - WithLevel sets the minimum level; ParseLevel reads one from
//     configuration.
//   - WithAttr attaches static attributes.
//   - WithContextExtractors and WithContextValue inject attributes from
//     context.
package logger
