package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending string
	Done                                          string // applied to completed titles
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymUnchecked                         string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name: "classic", Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow, Done: dim + strike,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name: "neon", Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m", Done: fgGray + strike,
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name: "mono", BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-",
		}
	default: // classic
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }
