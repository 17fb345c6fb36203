// Package telnet serves the loot terminal over Telnet and provides ANSI
// styling helpers for its output.
package telnet

import (
	"strings"
	"unicode/utf8"
)

// ANSI SGR sequences.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightRed    = "\033[91m"
	BrightYellow = "\033[93m"
	BrightWhite  = "\033[97m"
)

// Colorize wraps text in style and a reset. An empty style returns text
// unchanged.
func Colorize(style, text string) string {
	if style == "" {
		return text
	}
	return style + text + Reset
}

// StripANSI removes SGR sequences ("\033[...m").
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			if end := strings.IndexByte(s[i+2:], 'm'); end >= 0 {
				i += end + 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// VisibleWidth counts the runes a terminal prints for s.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// PadRight pads s with spaces to width visible columns. Styled text is
// measured without its escape sequences.
func PadRight(s string, width int) string {
	if n := width - VisibleWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
