package domain

import "strings"

// ColorOption is a named editor color tag.
type ColorOption struct {
	Label string
	Value string
}

// ColorOptions lists the color tags offered for new editors. The first one is the default.
var ColorOptions = []ColorOption{
	{Label: "Sky", Value: "bg-sky-100 text-sky-700 hover:bg-sky-200"},
	{Label: "Rose", Value: "bg-rose-100 text-rose-700 hover:bg-rose-200"},
	{Label: "Amber", Value: "bg-amber-100 text-amber-700 hover:bg-amber-200"},
	{Label: "Emerald", Value: "bg-emerald-100 text-emerald-700 hover:bg-emerald-200"},
	{Label: "Violet", Value: "bg-violet-100 text-violet-700 hover:bg-violet-200"},
	{Label: "Slate", Value: "bg-slate-100 text-slate-600 hover:bg-slate-200"},
	{Label: "Orange", Value: "bg-orange-100 text-orange-700 hover:bg-orange-200"},
	{Label: "Fuchsia", Value: "bg-fuchsia-100 text-fuchsia-700 hover:bg-fuchsia-200"},
}

// DefaultColor is the color given to an editor saved without one.
func DefaultColor() string {
	return ColorOptions[0].Value
}

// ResolveColor accepts either a color label ("rose") or a full tag and returns the tag.
// Unknown labels are returned unchanged.
func ResolveColor(s string) string {
	for _, opt := range ColorOptions {
		if strings.EqualFold(opt.Label, s) {
			return opt.Value
		}
	}
	return s
}

// Theme is a visual bucket derived from an editor's color tag.
type Theme string

// Theme buckets.
const (
	ThemeSky     Theme = "sky"
	ThemeRose    Theme = "rose"
	ThemeAmber   Theme = "amber"
	ThemeEmerald Theme = "emerald"
	ThemeViolet  Theme = "violet"
	ThemeOrange  Theme = "orange"
	ThemeFuchsia Theme = "fuchsia"
	ThemeSlate   Theme = "slate"
)

// themeOrder is checked in order; the first bucket named in the tag wins.
var themeOrder = []Theme{ThemeSky, ThemeRose, ThemeAmber, ThemeEmerald, ThemeViolet, ThemeOrange, ThemeFuchsia}

// ThemeFor maps a color tag to its theme bucket. Anything unrecognized is slate.
func ThemeFor(color string) Theme {
	for _, th := range themeOrder {
		if strings.Contains(color, string(th)) {
			return th
		}
	}
	return ThemeSlate
}

// DefaultEditors returns the roster seeded into an empty editors collection.
func DefaultEditors() []*Editor {
	return []*Editor{
		{ID: "e1", Name: "James", Color: "bg-sky-100 text-sky-700 hover:bg-sky-200"},
		{ID: "e2", Name: "Dolphine", Color: "bg-rose-100 text-rose-700 hover:bg-rose-200"},
		{ID: "e3", Name: "Eason", Color: "bg-amber-100 text-amber-700 hover:bg-amber-200"},
		{ID: "e4", Name: "Other", Color: "bg-slate-100 text-slate-600 hover:bg-slate-200"},
	}
}

// DefaultPrograms returns the programs seeded into an empty programs collection.
func DefaultPrograms() []*Program {
	return []*Program{
		{ID: "p1", Name: "Correspondents", WorkDays: 3, Duration: "10min", PremiereDay: "Fri"},
		{ID: "p2", Name: "DC Insiders", WorkDays: 2, Duration: "5min", PremiereDay: "Tue"},
		{ID: "p3", Name: "Finding Formosa", WorkDays: 5, Duration: "15min", PremiereDay: "Sun"},
		{ID: "p4", Name: "Zoom In, Zoom Out", WorkDays: 3, Duration: "8min", PremiereDay: "Wed"},
	}
}

// UnknownEditorID is the ID of editors synthesized for names missing from the roster.
const UnknownEditorID = "unknown"

// ResolveEditor finds the editor a task refers to by name: the stored roster first, then the
// default roster, otherwise a slate placeholder carrying the name.
func ResolveEditor(editors []*Editor, name string) *Editor {
	for _, e := range editors {
		if e != nil && e.Name == name {
			return e
		}
	}
	for _, e := range DefaultEditors() {
		if e.Name == name {
			return e
		}
	}
	return &Editor{ID: UnknownEditorID, Name: name, Color: "bg-slate-100 text-slate-500"}
}
