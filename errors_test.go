package voiceprefs

import (
	"testing"
)

func TestErrorVariables(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrInvalidInput", ErrInvalidInput, "invalid input parameters"},
		{"ErrInvalidKey", ErrInvalidKey, "invalid preference key"},
		{"ErrInvalidValue", ErrInvalidValue, "invalid preference value"},
		{"ErrPreferenceNotDefined", ErrPreferenceNotDefined, "preference not defined"},
		{"ErrProvider", ErrProvider, "provider request failed"},
		{"ErrNotConfigured", ErrNotConfigured, "required dependency not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message '%s', got '%s'", tt.expected, tt.err.Error())
			}
		})
	}
}
