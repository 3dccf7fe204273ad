package sanitize

import (
	"strings"
	"testing"
)

const JustPlainText = "Just plain text"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "leading/trailing artefacts",
			input: "<p>hi</p>",
			want:  "hi",
		},
		{
			name:  "double spaces inside text",
			input: "<b>a</b> <b>b</b>",
			want:  "a b",
		},
		{
			name:  "leading and trailing whitespace",
			input: "  <p>Hello</p>  ",
			want:  "Hello",
		},
		{
			name:  "preserves plain text",
			input: JustPlainText,
			want:  JustPlainText,
		},
		{
			name:  "handles empty string",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace-only collapses to empty",
			input: "   \n  ",
			want:  "",
		},
		{
			name:  "removes script tags and cleans",
			input: `  <script>alert('xss')</script>Hello world  `,
			want:  "Hello world",
		},
		{
			name:  "preserves markdown-like syntax",
			input: "  # Heading\n**bold** text  ",
			want:  "# Heading\n**bold** text",
		},
		{
			name:  "multiple spaces collapsed",
			input: "<p>Hello</p>   <p>World</p>",
			want:  "Hello World",
		},
		{
			name:  "non-breaking space normalized",
			input: "Hello world",
			want:  "Hello world",
		},
		{
			name:  "complex markup cleaned",
			input: "  <div><p>Hello <b>world</b></p><br><a href='#'>link</a></div>  ",
			want:  "Hello world link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}

			// Additional security check: ensure no HTML tags survive
			if strings.Contains(got, "<script") || strings.Contains(got, "onerror") {
				t.Errorf("Clean(%q) still contains dangerous content: %q", tt.input, got)
			}
		})
	}
}
