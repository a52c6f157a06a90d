package validation

import (
	"errors"
	"testing"
)

type signupInput struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
	Name     string `json:"name" validate:"notblank,max=80"`
}

type styleInput struct {
	Style string `json:"style" validate:"omitempty,oneof=visual auditory kinesthetic"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantErr   error
		wantField string
	}{
		{
			name:  "valid signup",
			input: signupInput{Email: "test@example.com", Password: "pw", Name: "Ada"},
		},
		{
			name:      "blank name",
			input:     signupInput{Email: "test@example.com", Password: "pw", Name: "   "},
			wantErr:   ErrMissingRequired,
			wantField: "name",
		},
		{
			name:      "missing password",
			input:     signupInput{Email: "test@example.com", Name: "Ada"},
			wantErr:   ErrMissingRequired,
			wantField: "password",
		},
		{
			name:      "malformed email",
			input:     signupInput{Email: "testexample.com", Password: "pw", Name: "Ada"},
			wantErr:   ErrInvalid,
			wantField: "email",
		},
		{
			name:      "unknown style",
			input:     styleInput{Style: "reading"},
			wantErr:   ErrInvalid,
			wantField: "style",
		},
		{
			name:  "empty style allowed by omitempty",
			input: styleInput{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Struct() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Struct() error = %v, want %v", err, tt.wantErr)
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Struct() error type = %T, want *Error", err)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("field = %s, want %s", verr.Fields[0].Field, tt.wantField)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	err := Required("topic")
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("Required() = %v, want ErrMissingRequired", err)
	}
	if err.Error() != "topic: topic is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
