// Package errors derives low-cardinality error labels for logs and alerts.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/technova/careers-api/internal/errors"
)

// Classify returns a short label for err. Application errors report their code; anything else
// reports the innermost concrete type name in snake_case.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(t.String())
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
