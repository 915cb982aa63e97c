package logger

import (
	"encoding"
	"fmt"
	"log/slog"
	"reflect"
)

// renderAttr turns fmt.Stringer values into strings so that materials and
// enum constants appear by name instead of as empty JSON objects. Values
// that already know how to marshal themselves are left alone, as are
// errors, which slog formats on its own.
func renderAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	switch v := a.Value.Any().(type) {
	case error, encoding.TextMarshaler, slog.LogValuer:
		return a
	case fmt.Stringer:
		if isNilPointer(v) {
			return slog.String(a.Key, "<nil>")
		}
		return slog.String(a.Key, v.String())
	}
	return a
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
