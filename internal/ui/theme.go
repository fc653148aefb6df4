package ui

import "strings"

// Theme bundles palette, symbols and box borders.
type Theme struct {
	Title, Muted, Accent, Success, Error, Warn string
	CornerTL, CornerTR, CornerBL, CornerBR     string
	H, V                                       string
	SymOK, SymFail, Bullet                     string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Warn: fgYellow,
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymOK: "✔", SymFail: "✖", Bullet: "•",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m",
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Warn: "\033[93m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymOK: "✔", SymFail: "✖", Bullet: "◆",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymOK: "ok", SymFail: "error:", Bullet: "-",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }
