// Package tui provides the terminal calendar for editflow.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Calendar or insights navigation
	ModeForm                // Task form (new or edit)
	ModeConfirm             // Confirmation dialog mode
	ModeHelp                // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeForm:
		return "form"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeForm
}

// View selects the main panel.
type View int

const (
	ViewCalendar View = iota // Month grid with the day panel
	ViewInsights             // Workload per editor
)

// String returns the panel title.
func (v View) String() string {
	if v == ViewInsights {
		return "Insights"
	}
	return "Calendar"
}

// Field indexes the inputs of the task form.
type Field int

const (
	FieldShow Field = iota
	FieldEpisode
	FieldEditor
	FieldStart
	FieldEnd
	FieldNote
	fieldCount
)

// Label returns the form label of the field.
func (f Field) Label() string {
	switch f {
	case FieldShow:
		return "Show"
	case FieldEpisode:
		return "Episode"
	case FieldEditor:
		return "Editor"
	case FieldStart:
		return "Start"
	case FieldEnd:
		return "End"
	case FieldNote:
		return "Note"
	default:
		return ""
	}
}
