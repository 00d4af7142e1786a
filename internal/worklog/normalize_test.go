package worklog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no line endings", input: "single line", want: "single line"},
		{name: "bare LF", input: "line1\nline2", want: "line1\r\nline2"},
		{name: "bare CR", input: "line1\rline2", want: "line1\r\nline2"},
		{name: "already CRLF", input: "line1\r\nline2", want: "line1\r\nline2"},
		{name: "mixed", input: "a\nb\rc\r\nd", want: "a\r\nb\r\nc\r\nd"},
		{name: "LF CR pair is two endings", input: "a\n\rb", want: "a\r\n\r\nb"},
		{name: "trailing newline", input: "done\n", want: "done\r\n"},
		{name: "blank lines kept", input: "\n\n", want: "\r\n\r\n"},
		{name: "double CR", input: "a\r\rb", want: "a\r\n\r\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"a\nb",
		"a\rb",
		"a\r\nb",
		"\r\r\n\n\r",
		"x\r\n\r\n",
		"\n\r\n\r",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", input, once, twice)
		}
	}
}

func TestEditorText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "a\r\nb", want: "a\nb"},
		{input: "a\rb", want: "a\nb"},
		{input: "a\nb", want: "a\nb"},
	}

	for _, tt := range tests {
		if got := EditorText(tt.input); got != tt.want {
			t.Errorf("EditorText(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if back := Normalize(EditorText(tt.input)); back != Normalize(tt.input) {
			t.Errorf("Normalize(EditorText(%q)) = %q, want %q", tt.input, back, Normalize(tt.input))
		}
	}
}
