package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
	timeLayout          = "2006-01-02 15:04"
)

var printer = message.NewPrinter(language.English)

// Points formats a score with thousands separators.
func Points(n int) string {
	return printer.Sprintf("%d", n)
}

// SignedPoints is Points with an explicit plus sign for gains.
func SignedPoints(n int) string {
	if n > 0 {
		return "+" + Points(n)
	}
	return Points(n)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ansiColor returns the truecolor escape for a #RRGGBB colour, or "" when it is malformed.
func ansiColor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

func colorize(text, hex string, useColor bool) string {
	code := ansiColor(hex)
	if !useColor || code == "" {
		return text
	}
	return code + text + colorReset
}
