package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeUnknownOperator, "operator %q is unknown", "xyz"),
			want: `UNKNOWN_OPERATOR: operator "xyz" is unknown`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidPDF, stderrors.New("unexpected token"), "parse object %d", 7),
			want: "INVALID_PDF: parse object 7: unexpected token",
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

func TestIs(t *testing.T) {
	err := New(ErrCodeMissingOperand, "operand 2 for Tf is missing")

	if !Is(err, ErrCodeMissingOperand) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeUnknownOperator) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeMissingOperand) {
		t.Error("Is() = true for non-structured error")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeDanglingReference, "object (99, 0) not in table")
	outer := fmt.Errorf("render subtree: %w", inner)

	if !Is(outer, ErrCodeDanglingReference) {
		t.Error("Is() did not unwrap wrapped error chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidOperand, "x")); got != ErrCodeInvalidOperand {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidOperand)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeFileNotFound, "no such file: sample.pdf")
	if got := UserMessage(err); got != "no such file: sample.pdf" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("zlib: invalid header")
	err := Wrap(ErrCodeUnsupportedFilter, cause, "decode stream")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() did not find wrapped cause")
	}
}
