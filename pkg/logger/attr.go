package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

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

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Feature records the gated feature name under the key "feature".
func Feature(name string) slog.Attr {
	return slog.String("feature", name)
}

// PlanTier records the effective plan tier under the key "plan".
func PlanTier(tier string) slog.Attr {
	return slog.String("plan", tier)
}

// RouteClass records the rate limit route class under the key "route_class".
func RouteClass(class string) slog.Attr {
	return slog.String("route_class", class)
}

// Period records a usage billing period under the key "period".
func Period(p string) slog.Attr {
	return slog.String("period", p)
}

// Usage records a usage counter value under the key "usage".
func Usage(count int64) slog.Attr {
	return slog.Int64("usage", count)
}

// Limit records a plan limit under the key "limit".
func Limit(limit int64) slog.Attr {
	return slog.Int64("limit", limit)
}

// Decision records the gate decision code under the key "decision".
func Decision(code string) slog.Attr {
	return slog.String("decision", code)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
