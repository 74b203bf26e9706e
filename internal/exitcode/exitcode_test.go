package exitcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf_Nil(t *testing.T) {
	if code := Of(nil); code != OK {
		t.Errorf("Of(nil) = %d, want %d", code, OK)
	}
}

func TestOf_CodedError(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{"generic", Generic},
		{"validation", Validation},
		{"io", IO},
		{"drift", Drift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrap(tt.code, fmt.Errorf("some error"))
			if got := Of(err); got != tt.code {
				t.Errorf("Of(Wrap(%d, ...)) = %d, want %d", tt.code, got, tt.code)
			}
		})
	}
}

func TestOf_WrappedCodedError(t *testing.T) {
	inner := Wrap(IO, fmt.Errorf("write failed"))
	wrapped := fmt.Errorf("outer: %w", inner)
	if got := Of(wrapped); got != IO {
		t.Errorf("Of(wrapped coded error) = %d, want %d", got, IO)
	}
}

func TestOf_StringFallback(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want int
	}{
		{"permission_denied", "open /etc/kit: permission denied", IO},
		{"not_a_directory", "mkdir /tmp/f/kit: not a directory", IO},
		{"read_only_fs", "write failed: read-only file system", IO},
		{"no_space", "write /kit/a.scad: no space left on device", IO},
		{"drift_keyword", "drift detected in 2 files", Drift},
		{"modified_keyword", "hatch_ring.scad modified since last write", Drift},
		{"schema_keyword", "schema validation failed", Validation},
		{"manifest_keyword", "manifest missing part entry", Validation},
		{"invalid_keyword", "invalid part slug", Validation},
		{"unknown_part", "unknown part \"airlock\"", Validation},
		{"generic_fallback", "something went wrong", Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.msg)
			if got := Of(err); got != tt.want {
				t.Errorf("Of(%q) = %d, want %d", tt.msg, got, tt.want)
			}
		})
	}
}

func TestWrap_NilError(t *testing.T) {
	if got := Wrap(IO, nil); got != nil {
		t.Errorf("Wrap(code, nil) = %v, want nil", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(IO, cause)

	var coded *Error
	if !errors.As(err, &coded) {
		t.Fatal("errors.As should match *Error")
	}
	if coded.Code != IO {
		t.Errorf("Code = %d, want %d", coded.Code, IO)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the root cause through Unwrap")
	}
}

func TestError_ErrorMessage(t *testing.T) {
	err := Wrap(Validation, fmt.Errorf("bad input"))
	if err.Error() != "bad input" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad input")
	}
}
