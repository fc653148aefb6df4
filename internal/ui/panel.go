package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// visibleWidth ignores escape sequences and counts wide runes as two cells.
func visibleWidth(s string) int { return lipgloss.Width(s) }

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := visibleWidth(ln); w > maxw {
			maxw = w
		}
	}
	fmt.Fprintln(stdout, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(stdout, t.V+" "+ln+strings.Repeat(" ", maxw-visibleWidth(ln))+" "+t.V)
	}
	fmt.Fprintln(stdout, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// Field renders "label: value" with the label muted.
func Field(label, value string) string {
	return C(current.Muted, label+":") + " " + value
}

func Title(s string) string { return C(current.Title, s) }

func Bullet(s string) string { return C(current.Accent, current.Bullet) + " " + s }
