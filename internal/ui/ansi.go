package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	strike = "\033[9m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool

	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput redirects notices and panels. Nil keeps the current writer.
func SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetColorMode maps "always", "never" and "auto" onto the color switches.
func SetColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		SetColorForcing(true, false)
	case "never":
		SetColorForcing(false, true)
	default:
		SetColorForcing(false, false)
	}
}

func isTTY() bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(out, C(Current().Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(errOut, C(Current().Error, symCross+" "+msg)) }
