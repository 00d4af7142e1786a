package worklog

import "strings"

// LineEnding is the canonical line ending for stored and returned content.
const LineEnding = "\r\n"

// Normalize rewrites every line ending (CRLF, bare CR, bare LF) as CRLF.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ReplaceAll(toLF(text), "\n", LineEnding)
}

// EditorText returns text with LF line endings for surfaces that edit in LF.
// Content coming back from such a surface goes through Normalize on save.
func EditorText(text string) string {
	if text == "" {
		return text
	}
	return toLF(text)
}

func toLF(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
