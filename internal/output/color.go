package output

import (
	"fmt"
	"io"
	"os"
)

// ColorMode is the value of the --color flag.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(s); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (use auto, always or never)", s)
	}
}

// Enabled reports whether output to w is styled. In auto mode that is when
// w is a terminal and NO_COLOR is unset; unknown modes behave like auto.
func (m ColorMode) Enabled(w io.Writer, getenv func(string) string) bool {
	switch m {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return IsTTY(w) && getenv("NO_COLOR") == ""
	}
}

// IsTTY checks if a writer is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
