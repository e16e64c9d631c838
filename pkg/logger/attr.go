package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a record field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Fields records several field names under the key "fields".
// If names is empty, it returns an empty Attr.
func Fields(names ...string) slog.Attr {
	if len(names) == 0 {
		return slog.Attr{}
	}
	return slog.Any("fields", names)
}

// Record records the bound record type under the key "record".
func Record(typeName string) slog.Attr {
	return slog.String("record", typeName)
}

// Reason records why a value was rejected under the key "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// ValidationGroup records a validation group name under the key "validation_group".
// An empty name stands for the ungrounded rules and yields an empty Attr.
func ValidationGroup(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("validation_group", name)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

