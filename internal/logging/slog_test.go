package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if NewLogger(level) == nil {
			t.Errorf("NewLogger(%q) returned nil", level)
		}
	}
}

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	if WithOperation(logger, "test_operation") == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithService(t *testing.T) {
	logger := slog.Default()
	if WithService(logger, "fireflies") == nil {
		t.Error("WithService returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestTranscriptIDAttr(t *testing.T) {
	attr := TranscriptID("tr_123")
	if attr.Key != KeyTranscriptID {
		t.Errorf("TranscriptID key = %q, want %q", attr.Key, KeyTranscriptID)
	}
	if attr.Value.String() != "tr_123" {
		t.Errorf("TranscriptID value = %q, want %q", attr.Value.String(), "tr_123")
	}
}

func TestErrAttr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}
}

func TestErrAttrNil(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty group", attr.Key)
	}
}
