package encode

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Colors selects a paint function per token class; nil functions leave
// the token unpainted.
type Colors struct {
	Field  func(format string, a ...any) string
	String func(format string, a ...any) string
	Number func(format string, a ...any) string
	Bool   func(format string, a ...any) string
	Null   func(format string, a ...any) string
	Punct  func(format string, a ...any) string
}

var noColors = &Colors{}

func NewColors() *Colors {
	return &Colors{
		Field:  color.RGB(196, 96, 16).SprintfFunc(),
		String: color.GreenString,
		Number: color.RGB(128, 216, 236).SprintfFunc(),
		Bool:   color.MagentaString,
		Null:   color.RGB(128, 128, 128).SprintfFunc(),
		Punct:  color.RGB(255, 0, 196).SprintfFunc(),
	}
}

// AutoColors returns NewColors when stdout is a terminal, nil
// otherwise.
func AutoColors() *Colors {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return NewColors()
	}
	return nil
}
