package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/editflow/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Border     lipgloss.Color
	Selected   lipgloss.Color
	Today      lipgloss.Color
	Error      lipgloss.Color
	Upcoming   lipgloss.Color
	Active     lipgloss.Color
	Completed  lipgloss.Color
	PillText   lipgloss.Color
	BarEmpty   lipgloss.Color
	OutOfMonth lipgloss.Color
}{
	Primary:    lipgloss.Color("#6366F1"),
	Muted:      lipgloss.Color("#6B7280"),
	Text:       lipgloss.Color("#E5E7EB"),
	Border:     lipgloss.Color("#374151"),
	Selected:   lipgloss.Color("#A78BFA"),
	Today:      lipgloss.Color("#F59E0B"),
	Error:      lipgloss.Color("#EF4444"),
	Upcoming:   lipgloss.Color("#60A5FA"),
	Active:     lipgloss.Color("#34D399"),
	Completed:  lipgloss.Color("#9CA3AF"),
	PillText:   lipgloss.Color("#111827"),
	BarEmpty:   lipgloss.Color("#1F2937"),
	OutOfMonth: lipgloss.Color("#4B5563"),
}

// themeColors maps editor themes to pill backgrounds.
var themeColors = map[domain.Theme]lipgloss.Color{
	domain.ThemeSky:     lipgloss.Color("#7DD3FC"),
	domain.ThemeRose:    lipgloss.Color("#FDA4AF"),
	domain.ThemeAmber:   lipgloss.Color("#FCD34D"),
	domain.ThemeEmerald: lipgloss.Color("#6EE7B7"),
	domain.ThemeViolet:  lipgloss.Color("#C4B5FD"),
	domain.ThemeOrange:  lipgloss.Color("#FDBA74"),
	domain.ThemeFuchsia: lipgloss.Color("#F0ABFC"),
	domain.ThemeSlate:   lipgloss.Color("#CBD5E1"),
}

// ThemeColor returns the pill color of a theme; unknown themes are slate.
func ThemeColor(th domain.Theme) lipgloss.Color {
	if c, ok := themeColors[th]; ok {
		return c
	}
	return themeColors[domain.ThemeSlate]
}

// Styles contains all lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style

	// Calendar
	Weekday       lipgloss.Style
	Cell          lipgloss.Style
	CellSelected  lipgloss.Style
	DayNumber     lipgloss.Style
	DayToday      lipgloss.Style
	DayOutOfMonth lipgloss.Style
	Pill          lipgloss.Style
	More          lipgloss.Style

	// Day panel
	PanelTitle   lipgloss.Style
	TaskLine     lipgloss.Style
	TaskSelected lipgloss.Style
	TaskMeta     lipgloss.Style

	// Status badges
	StatusUpcoming  lipgloss.Style
	StatusActive    lipgloss.Style
	StatusCompleted lipgloss.Style
	StatusUnknown   lipgloss.Style

	// Insights
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	BarEmpty  lipgloss.Style

	// Form and dialogs
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	InputLabel  lipgloss.Style
	InputFocus  lipgloss.Style

	Help     lipgloss.Style
	Footer   lipgloss.Style
	ErrorMsg lipgloss.Style
	Warning  lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text),

		Tab: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Weekday: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Bold(true),

		Cell: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Colors.Border),

		CellSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Colors.Selected),

		DayNumber: lipgloss.NewStyle().
			Foreground(Colors.Text),

		DayToday: lipgloss.NewStyle().
			Foreground(Colors.Today).
			Bold(true),

		DayOutOfMonth: lipgloss.NewStyle().
			Foreground(Colors.OutOfMonth),

		Pill: lipgloss.NewStyle().
			Foreground(Colors.PillText),

		More: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		TaskLine: lipgloss.NewStyle().
			Foreground(Colors.Text).
			PaddingLeft(2),

		TaskSelected: lipgloss.NewStyle().
			Foreground(Colors.Selected).
			Bold(true).
			PaddingLeft(2),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		StatusUpcoming: lipgloss.NewStyle().
			Foreground(Colors.Upcoming),

		StatusActive: lipgloss.NewStyle().
			Foreground(Colors.Active),

		StatusCompleted: lipgloss.NewStyle().
			Foreground(Colors.Completed),

		StatusUnknown: lipgloss.NewStyle().
			Foreground(Colors.Error),

		StatLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		StatValue: lipgloss.NewStyle().
			Foreground(Colors.Text).
			Bold(true),

		BarEmpty: lipgloss.NewStyle().
			Foreground(Colors.BarEmpty),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		InputLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(9),

		InputFocus: lipgloss.NewStyle().
			Foreground(Colors.Selected).
			Bold(true).
			Width(9),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Colors.Today),
	}
}

// StatusStyle returns the badge style for a task status.
func (s Styles) StatusStyle(status domain.TaskStatus) lipgloss.Style {
	switch status {
	case domain.StatusUpcoming:
		return s.StatusUpcoming
	case domain.StatusActive:
		return s.StatusActive
	case domain.StatusCompleted:
		return s.StatusCompleted
	default:
		return s.StatusUnknown
	}
}

// PillStyle returns the background style for a task pill of the given theme.
func (s Styles) PillStyle(th domain.Theme) lipgloss.Style {
	return s.Pill.Background(ThemeColor(th))
}
