package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// visibleWidth is the terminal cell width of s without escape codes.
func visibleWidth(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// PanelString frames lines in a box using the current theme.
func PanelString(lines []string) string {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := visibleWidth(ln); w > maxw {
			maxw = w
		}
	}
	var b strings.Builder
	b.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		pad := strings.Repeat(" ", maxw-visibleWidth(ln))
		b.WriteString(t.V + " " + ln + pad + " " + t.V + "\n")
	}
	b.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return b.String()
}

// Panel draws a framed box to the notice output.
func Panel(lines []string) {
	fmt.Fprint(out, PanelString(lines))
}
