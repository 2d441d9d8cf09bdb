package util

import "testing"

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already normal",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "mixed whitespace",
			input: "  hello\t\nworld  ",
			want:  "hello world",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSpace(tt.input); got != tt.want {
				t.Fatalf("unexpected normalized value: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short text unchanged",
			input:  "rainfall products",
			maxLen: 50,
			want:   "rainfall products",
		},
		{
			name:   "cut on word boundary",
			input:  "rainfall products from the Imager payload",
			maxLen: 20,
			want:   "rainfall products...",
		},
		{
			name:   "zero max returns all",
			input:  "rainfall products",
			maxLen: 0,
			want:   "rainfall products",
		},
		{
			name:   "whitespace normalized first",
			input:  "rainfall   \n products",
			maxLen: 50,
			want:   "rainfall products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snippet(tt.input, tt.maxLen); got != tt.want {
				t.Fatalf("unexpected snippet: got %q, want %q", got, tt.want)
			}
		})
	}
}
