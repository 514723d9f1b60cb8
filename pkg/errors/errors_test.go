package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidKind, "unknown chart kind: %s", "pie")

	if err.Code != ErrCodeInvalidKind {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidKind)
	}
	if err.Message != "unknown chart kind: pie" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeDataShape, "contour requires 3 datasets"),
			want: "DATA_SHAPE: contour requires 3 datasets",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeRenderFailed, fmt.Errorf("boom"), "failed to render svg"),
			want: "RENDER_FAILED: failed to render svg: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ErrCodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDataShape, "bad shape")

	if !Is(err, ErrCodeDataShape) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeDataShape) {
		t.Error("Is should not match a non-structured error")
	}

	// Wrapped in a plain error, the code should still be found.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeDataShape) {
		t.Error("Is should unwrap to find the structured error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFigure, "bad")); got != ErrCodeInvalidFigure {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInvalidFigure)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode for plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "unknown color: mauve-ish")
	if got := UserMessage(err); got != "unknown color: mauve-ish" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestIsShape(t *testing.T) {
	if !IsShape(New(ErrCodeDataShape, "line plot requires x and y")) {
		t.Error("IsShape should be true for DATA_SHAPE errors")
	}
	if IsShape(New(ErrCodeInvalidKind, "nope")) {
		t.Error("IsShape should be false for other codes")
	}
}

func TestValidateFigurePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "figure.toml", false},
		{"nested", "figures/cdf.toml", false},
		{"empty", "", true},
		{"traversal", "../secrets.toml", true},
		{"embedded traversal", "figures/../../etc/passwd", true},
		{"null byte", "figure\x00.toml", true},
		{"control char", "figure\n.toml", true},
		{"too long", strings.Repeat("a", 1025), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFigurePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFigurePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputBase(t *testing.T) {
	tests := []struct {
		base    string
		wantErr bool
	}{
		{"figure", false},
		{"my-figure_01", false},
		{"", true},
		{"a/b", true},
		{`a\b`, true},
		{".", true},
		{"..", true},
	}

	for _, tt := range tests {
		err := ValidateOutputBase(tt.base)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutputBase(%q) error = %v, wantErr %v", tt.base, err, tt.wantErr)
		}
	}
}
