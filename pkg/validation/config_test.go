package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigValidator_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(*ConfigValidator)
		wantErr bool
	}{
		{"non-negative zero", func(cv *ConfigValidator) { cv.NonNegative("Initial", 0) }, false},
		{"non-negative below", func(cv *ConfigValidator) { cv.NonNegative("Initial", -1) }, true},
		{"max at bound", func(cv *ConfigValidator) { cv.MaxInt("Size", 10, 10) }, false},
		{"max above", func(cv *ConfigValidator) { cv.MaxInt("Size", 11, 10) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("TestConfig")
			tt.apply(cv)
			err := cv.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_MaxIntMessage(t *testing.T) {
	err := NewConfigValidator("Range").MaxInt("Span", 100000, 99999).Validate()
	if err == nil || err.Error() != "Range.Span: value 100000 exceeds maximum 99999" {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigValidator_CustomWrapsCause(t *testing.T) {
	cause := errors.New("bad reference")
	err := NewConfigValidator("Script").Custom("Steps", func() error { return cause }).Validate()

	if !errors.Is(err, cause) {
		t.Errorf("Validate() = %v, want wrapped %v", err, cause)
	}
}

func TestConfigValidator_ValidateJoinsErrors(t *testing.T) {
	err := NewConfigValidator("Config").
		MaxInt("MaxDeletedSize", 51, 50).
		NonNegative("InitialAddedSize", -1).
		Validate()

	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "2 errors") || !strings.Contains(msg, "InitialAddedSize") {
		t.Errorf("Validate() = %q, want both failures reported", msg)
	}
}

func TestDefaultOrInt(t *testing.T) {
	if got := DefaultOrInt(0, 50); got != 50 {
		t.Errorf("DefaultOrInt(0, 50) = %d", got)
	}
	if got := DefaultOrInt(-3, 50); got != 50 {
		t.Errorf("DefaultOrInt(-3, 50) = %d", got)
	}
	if got := DefaultOrInt(7, 50); got != 7 {
		t.Errorf("DefaultOrInt(7, 50) = %d", got)
	}
}
