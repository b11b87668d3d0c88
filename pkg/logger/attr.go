package logger

import (
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errList ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errList))
	for i, err := range errList {
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

// ErrorKind records the taxonomy kind of err under "error_kind".
// Untagged or nil errors produce an empty Attr.
func ErrorKind(err error) slog.Attr {
	kind := errs.KindOf(err)
	if kind == errs.KindUnknown {
		return slog.Attr{}
	}
	return slog.String("error_kind", string(kind))
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// PlanCode records a plan code under "plan_code".
func PlanCode(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("plan_code", code)
}

// SubscriptionID records a subscription identifier under "subscription_id".
func SubscriptionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("subscription_id", id)
}

// GroupID records a group subscription identifier under "group_id".
func GroupID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("group_id", id)
}

// TaskID records a queue task identifier under "task_id".
func TaskID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("task_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation records an operation name under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}
