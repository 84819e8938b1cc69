package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/match"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal creates a Terminal for w. Color is only used when w is a
// terminal.
func NewTerminal(w io.Writer) *Terminal {
	isTerminal := false
	if f, ok := w.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal,
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// ConfidenceColor returns the color for a match confidence bucket
func ConfidenceColor(c match.Confidence) string {
	switch c {
	case match.ConfidenceHigh:
		return ColorGreen
	case match.ConfidenceMedium:
		return ColorYellow
	default:
		return ColorGray
	}
}

// StatusColor returns the color for an item status
func StatusColor(s database.ItemStatus) string {
	switch s {
	case database.StatusActive:
		return ColorCyan
	case database.StatusClaimed:
		return ColorGreen
	default:
		return ColorGray
	}
}

// KindColor returns the color for a report kind
func KindColor(k match.Kind) string {
	if k == match.KindLost {
		return ColorRed
	}
	return ColorGreen
}
