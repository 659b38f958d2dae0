package sanitizer

import (
	"strings"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  John  ",
			want:  "John",
		},
		{
			name:  "multiple spaces between words",
			input: "Mary    Ann",
			want:  "Mary Ann",
		},
		{
			name:  "tabs and newlines",
			input: "Mary\t\nAnn",
			want:  "Mary Ann",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " O'Brien-Núñez ",
			want:  "O'Brien-Núñez",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeName_LongInput(t *testing.T) {
	input := strings.Repeat("a  ", 5000)
	got := NormalizeName(input)

	if strings.Contains(got, "  ") {
		t.Error("expected whitespace runs to be collapsed")
	}
	if len(got) != 5000*2-1 {
		t.Errorf("len = %d, want %d", len(got), 5000*2-1)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" john@example.com ", "john@example.com"},
		{"John@Example.com", "John@Example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
