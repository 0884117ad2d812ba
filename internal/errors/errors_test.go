package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "application not found",
			},
			want: "application not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeDelivery,
				Message: "send email",
				Cause:   errors.New("connection refused"),
			},
			want: "send email: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false, want true", err)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"validation", Validation("bad input"), ErrCodeValidation, "bad input"},
		{"validationf", Validationf("%s is required", "email"), ErrCodeValidation, "email is required"},
		{"missing file", MissingFile("Resume file is required"), ErrCodeMissingFile, "Resume file is required"},
		{"invalid id", InvalidID("Invalid application ID"), ErrCodeInvalidID, "Invalid application ID"},
		{"not found", NotFound("contact not found"), ErrCodeNotFound, "contact not found"},
		{"not foundf", NotFoundf("job listing %d not found", 9), ErrCodeNotFound, "job listing 9 not found"},
		{"conflict", Conflict("already exists"), ErrCodeConflict, "already exists"},
		{"internal", Internal("boom"), ErrCodeInternal, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "email must be a valid email address")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "email" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "email")
	}
}

func TestDelivery(t *testing.T) {
	cause := errors.New("535 authentication failed")
	err := Delivery(cause, "send email")
	if !IsDelivery(err) {
		t.Fatalf("IsDelivery(%v) = false, want true", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Delivery error should unwrap to its cause")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "wrapped"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Delivery(nil, "send"); err != nil {
		t.Errorf("Delivery(nil) = %v, want nil", err)
	}
}

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", fmt.Errorf("create application: %w", Validation("x")), IsValidation},
		{"missing file", fmt.Errorf("submit: %w", MissingFile("x")), IsMissingFile},
		{"invalid id", fmt.Errorf("get: %w", InvalidID("x")), IsInvalidID},
		{"not found", fmt.Errorf("delete: %w", NotFound("x")), IsNotFound},
		{"conflict", fmt.Errorf("create: %w", Conflict("x")), IsConflict},
		{"timeout", fmt.Errorf("list: %w", &AppError{Code: ErrCodeTimeout}), IsTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
			if tt.check(errors.New("plain")) {
				t.Errorf("predicate returned true for a plain error")
			}
			if tt.check(nil) {
				t.Errorf("predicate returned true for nil")
			}
		})
	}
}

func TestGetCodeFieldMessage(t *testing.T) {
	err := fmt.Errorf("update status: %w", ValidationField("status", "Invalid status value"))

	if got := GetCode(err); got != ErrCodeValidation {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeValidation)
	}
	if got := GetField(err); got != "status" {
		t.Errorf("GetField() = %v, want status", got)
	}
	if got := GetMessage(err); got != "Invalid status value" {
		t.Errorf("GetMessage() = %v, want %q", got, "Invalid status value")
	}

	plain := errors.New("plain")
	if GetCode(plain) != "" || GetField(plain) != "" || GetMessage(plain) != "" {
		t.Errorf("accessors should return empty values for non-AppError")
	}
}
