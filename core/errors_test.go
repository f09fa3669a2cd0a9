package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(errors.New("boom"), FieldError{Field: "name", Error: "taken"})

	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("NewValidationError() = %T, want *ValidationError", err)
	}
	if vErr.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", vErr.Error(), "boom")
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "name" {
		t.Errorf("Fields = %+v", vErr.Fields)
	}

	if empty := (&ValidationError{}); empty.Error() != "" {
		t.Errorf("Error() = %q, want empty", empty.Error())
	}
}

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("fatal fault")
	if !IsShutdown(err) {
		t.Error("IsShutdown() = false, want true")
	}
	if !IsShutdown(errors.Wrap(err, "handling request")) {
		t.Error("IsShutdown() did not unwrap the cause")
	}
	if IsShutdown(errors.New("boom")) {
		t.Error("IsShutdown() = true for a plain error")
	}
}
