package backend

import (
	"errors"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	cause := errors.New("boom")

	fatal := NewFatal(cause)
	if fatal.Class != Fatal {
		t.Errorf("NewFatal should produce Fatal class, got %v", fatal.Class)
	}
	if !errors.Is(fatal, cause) {
		t.Errorf("expected Unwrap to expose the original cause")
	}

	protocol := NewProtocol(cause)
	if protocol.Class != Protocol {
		t.Errorf("NewProtocol should produce Protocol class, got %v", protocol.Class)
	}
}

func TestErrorMessagePassesThrough(t *testing.T) {
	cause := errors.New("gamma control failed")
	err := NewProtocol(cause)
	if err.Error() != cause.Error() {
		t.Errorf("expected Error() to match wrapped cause, got %q", err.Error())
	}
}
