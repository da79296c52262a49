package errors

import (
	"strings"
	"testing"
)

func TestValidateGraphName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "mutag-0", false},
		{"with spaces", "molecule 12", false},
		{"unicode", "graphé", false},

		{"too long", strings.Repeat("g", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraph) {
				t.Errorf("ValidateGraphName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidGraph)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graphs.json", false},
		{"absolute", "/data/graphs.json", false},
		{"nested", "data/train/graphs.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "graphs\x00.json", true},
		{"control char", "graphs\x07.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	if err := ValidateChoice(ErrCodeInvalidFormat, "format", "svg", "dot", "svg"); err != nil {
		t.Errorf("ValidateChoice(svg) error = %v, want nil", err)
	}

	err := ValidateChoice(ErrCodeInvalidFormat, "format", "png", "dot", "svg")
	if err == nil {
		t.Fatal("ValidateChoice(png) should fail")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
	want := `invalid format: "png" (must be one of: dot, svg)`
	if UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}
