package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
)

var (
	forceColor   bool
	disableColor bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetOutput redirects OK/Info/Panel and Fail output. Used by tests.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

func Stdout() io.Writer { return stdout }

func isTTY() bool {
	f, ok := stdout.(*os.File)
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

func OK(msg string)    { fmt.Fprintln(stdout, C(current.Success, current.SymOK+" "+msg)) }
func Fail(msg string)  { fmt.Fprintln(stderr, C(current.Error, current.SymFail+" "+msg)) }
func Info(msg string)  { fmt.Fprintln(stdout, msg) }
func Muted(msg string) { fmt.Fprintln(stdout, C(current.Muted, msg)) }
func Hint(msg string)  { fmt.Fprintln(stderr, C(current.Muted, msg)) }
func Warn(msg string)  { fmt.Fprintln(stdout, C(current.Warn, msg)) }
