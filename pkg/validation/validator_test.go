package validation

import (
	"strings"
	"testing"
)

type sampleStep struct {
	Op    string `validate:"required,oneof=add remove"`
	Count int    `validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr string
	}{
		{"valid", &sampleStep{Op: "add"}, ""},
		{"missing op", &sampleStep{}, "field is required"},
		{"bad op", &sampleStep{Op: "drop"}, "is not one of [add remove]"},
		{"negative", &sampleStep{Op: "remove", Count: -1}, "greater than or equal to 0"},
		{"nil", nil, "cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateStruct() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateStruct() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		valid   bool
	}{
		{"knows", true},
		{"_private", true},
		{"works-at", true},
		{"edge2", true},
		{"", false},
		{"2fast", false},
		{"has space", false},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateName(%q) error = %v, want valid=%v", tt.name, err, tt.valid)
			}
		})
	}
}
