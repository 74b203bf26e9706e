package exitcode

import (
	"errors"
	"strings"
)

const (
	OK         = 0
	Generic    = 1
	Validation = 2
	IO         = 3
	Drift      = 4
)

type Error struct {
	Code  int
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Cause: err}
}

func Of(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	// Fallback: string-based classification for errors not yet wrapped with typed codes.
	// Each case here is a candidate for future replacement with a typed error.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "not a directory"),
		strings.Contains(msg, "read-only file system"),
		strings.Contains(msg, "no space left"):
		return IO
	case strings.Contains(msg, "drift"),
		strings.Contains(msg, "modified since last write"):
		return Drift
	case strings.Contains(msg, "schema") ||
		strings.Contains(msg, "manifest") ||
		strings.Contains(msg, "validation") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "unknown part"):
		return Validation
	default:
		return Generic
	}
}
