package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Box           lipgloss.Style
	RoundedBox    lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	NavActive     lipgloss.Style
	NavInactive   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Warning       lipgloss.Color
}

// palette holds the colors a theme is built from.
type palette struct {
	text    lipgloss.Color
	onShade lipgloss.Color // text drawn on top of accent
	accent  lipgloss.Color
	income  lipgloss.Color
	expense lipgloss.Color
	warning lipgloss.Color
	info    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	highlight := lipgloss.NewStyle().Background(p.accent).Foreground(p.onShade).Bold(true)

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginBottom(1),
		Bold:       lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Selected:   highlight,
		Box:        lipgloss.NewStyle().Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(1, 2),

		Income:  lipgloss.NewStyle().Foreground(p.income),
		Expense: lipgloss.NewStyle().Foreground(p.expense),

		NavActive:   highlight.Padding(0, 1),
		NavInactive: lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),

		StatusSuccess: status(p.income),
		StatusError:   status(p.expense),
		StatusWarning: status(p.warning),
		StatusInfo:    status(p.info),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),

		Muted:   p.muted,
		Border:  p.border,
		Warning: p.warning,
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	text:    "#fafafa",
	onShade: "#fafafa",
	accent:  "#2e86de",
	income:  "#10b981",
	expense: "#ef4444",
	warning: "#f59e0b",
	info:    "#3b82f6",
	muted:   "#737373",
	border:  "#404040",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	text:    "#cdd6f4",
	onShade: "#1e1e2e",
	accent:  "#cba6f7",
	income:  "#a6e3a1",
	expense: "#f38ba8",
	warning: "#f9e2af",
	info:    "#89dceb",
	muted:   "#6c7086",
	border:  "#45475a",
})

// GetTheme returns a theme by name. Unknown names get Default.
func GetTheme(name string) Theme {
	if name == "catppuccin-mocha" {
		return CatppuccinMocha
	}
	return Default
}

// CategoryIcons maps the default categories to emoji icons.
var CategoryIcons = map[string]string{
	"Gaji":           "💼",
	"Bonus":          "🎉",
	"Freelance":      "💻",
	"Investasi":      "📈",
	"Makanan":        "🍜",
	"Belanja Online": "🛒",
	"Paket":          "📦",
	"Tagihan":        "🧾",
	"Transportasi":   "🚌",
	"Hiburan":        "🎬",
	"Kesehatan":      "💊",
	"Pendidikan":     "📚",
	"Lainnya":        "🏷️",
}

// GetCategoryIcon returns an icon for a category. Custom categories get a generic tag.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "🏷️"
}
