package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad" {
		t.Errorf("expected message 'bad', got %q", err.Message)
	}
}

func TestAppError_IllegalState_Success(t *testing.T) {
	err := IllegalState("Sequence")
	if err.Code != ErrCodeIllegalState {
		t.Errorf("expected ILLEGAL_STATE, got %s", err.Code)
	}
	if err.Details["kind"] != "Sequence" {
		t.Errorf("expected kind=Sequence, got %v", err.Details["kind"])
	}
	if !strings.Contains(err.Error(), "only be traversed once") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	err := IllegalState("AsyncSequence")
	if !stderrors.Is(err, ErrIllegalState) {
		t.Error("expected errors.Is to match ErrIllegalState")
	}
	if stderrors.Is(err, ErrUnsupportedSource) {
		t.Error("expected errors.Is not to match ErrUnsupportedSource")
	}
	wrapped := fmt.Errorf("count: %w", err)
	if !IsIllegalState(wrapped) {
		t.Error("expected IsIllegalState to see through wrapping")
	}
	if IsIllegalState(stderrors.New("plain")) {
		t.Error("plain error must not be illegal state")
	}
}

func TestAppError_UnsupportedSource_Success(t *testing.T) {
	err := UnsupportedSource("int")
	if !stderrors.Is(err, ErrUnsupportedSource) {
		t.Error("expected errors.Is to match ErrUnsupportedSource")
	}
	if err.Details["type"] != "int" {
		t.Errorf("expected type=int, got %v", err.Details["type"])
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("limit", "must be positive")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "limit" {
		t.Errorf("expected field=limit, got %v", err.Details["field"])
	}
}

func TestAppError_InvalidInput_EmptyField(t *testing.T) {
	err := InvalidInput("", "oops")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Internal(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find cause through Unwrap")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := MissingField("name")
	err.WithDetails(map[string]any{"extra": 1})
	if err.Details["field"] != "name" || err.Details["extra"] != 1 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := New(ErrCodeInternal, "x")
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details)
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "bad format")
	if got := err.Error(); got != "INVALID_FORMAT: bad format" {
		t.Errorf("unexpected format %q", got)
	}
	err.WithCause(stderrors.New("io"))
	if got := err.Error(); got != "INVALID_FORMAT: bad format (cause: io)" {
		t.Errorf("unexpected format %q", got)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"IllegalState", IllegalState("Sequence"), ErrCodeIllegalState},
		{"UnsupportedSource", UnsupportedSource("chan int"), ErrCodeUnsupportedSource},
		{"InvalidInput", InvalidInput("f", "r"), ErrCodeInvalidInput},
		{"Validation", Validation("m"), ErrCodeInvalidInput},
		{"MissingField", MissingField("f"), ErrCodeMissingField},
		{"InvalidFormat", InvalidFormat("f", "yaml"), ErrCodeInvalidFormat},
		{"Internal", Internal(nil), ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
		})
	}
}

func TestErrorCode_IsContractCode_Table(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeIllegalState, true},
		{ErrCodeUnsupportedSource, true},
		{ErrCodeInvalidInput, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := IsContractCode(tc.code); got != tc.want {
				t.Errorf("IsContractCode(%s) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", IllegalState("Sequence"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeIllegalState {
		t.Errorf("expected ILLEGAL_STATE, got %s", appErr.Code)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected AsAppError to fail for a plain error")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var _ error = (*AppError)(nil)
}
