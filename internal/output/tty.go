package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ResolveColorMode applies the --color flag ("never", "always" or "auto")
// to the detected terminal state.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal. Only *os.File can be one.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// IsInputTTY reports whether reader is an interactive terminal.
// Commands use it to decide between reading stdin and opening the editor.
func IsInputTTY(reader io.Reader) bool {
	file, ok := reader.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
