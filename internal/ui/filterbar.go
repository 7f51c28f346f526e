package ui

import (
	"strings"

	"chall/internal/catalog"
	"chall/internal/format"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	activeSymbol   = "◆"
	inactiveSymbol = "◇"
	separator      = " · "
	borderTop      = "┌"
	borderSide     = "│"
	borderBottom   = "└"
	checkSymbol    = "✓"
	crossSymbol    = "✗"
)

func BrowseTheme() *huh.Theme {
	t := huh.ThemeBase()
	red := lipgloss.Color("1")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.SetString(crossSymbol).Foreground(red)
	t.Blurred.ErrorMessage = t.Blurred.ErrorMessage.SetString(crossSymbol).Foreground(red)
	return t
}

// Control is a selectable filter option.
type Control struct {
	Label   string
	Binding catalog.Binding
}

type Group struct {
	Title    string
	Kind     catalog.FilterKind
	Controls []Control
}

// Controls builds the difficulty and topic selector groups, each led by
// an "All" control.
func Controls(topics []string, lang string) []Group {
	difficulty := Group{Title: "Difficulty", Kind: catalog.FilterDifficulty}
	difficulty.Controls = append(difficulty.Controls, newControl(catalog.FilterDifficulty, catalog.All, lang))
	for _, d := range catalog.Difficulties {
		difficulty.Controls = append(difficulty.Controls, newControl(catalog.FilterDifficulty, string(d), lang))
	}

	topic := Group{Title: "Topic", Kind: catalog.FilterTopic}
	topic.Controls = append(topic.Controls, newControl(catalog.FilterTopic, catalog.All, lang))
	for _, t := range topics {
		topic.Controls = append(topic.Controls, newControl(catalog.FilterTopic, t, lang))
	}

	return []Group{difficulty, topic}
}

func newControl(kind catalog.FilterKind, value, lang string) Control {
	return Control{
		Label:   format.Label(value, lang),
		Binding: catalog.Binding{Kind: kind, Value: value},
	}
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func activeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

// RenderFilterBar draws the selector groups with the active control of
// each group marked.
func RenderFilterBar(groups []Group, state catalog.FilterState) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" Filters\n")

	for _, g := range groups {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(g.Title)
		b.WriteString(separator)
		b.WriteString(renderControls(g.Controls, state))
		b.WriteString("\n")
	}

	if state.Search != "" {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" Search")
		b.WriteString(separator)
		b.WriteString(state.Search)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}

func renderControls(controls []Control, state catalog.FilterState) string {
	parts := make([]string, len(controls))
	for i, c := range controls {
		if c.Binding.Active(state) {
			parts[i] = activeStyle().Render(activeSymbol + " " + c.Label)
		} else {
			parts[i] = inactiveSymbol + " " + c.Label
		}
	}
	return strings.Join(parts, "  ")
}

type Check struct {
	OK   bool
	Text string
}

// RenderReport draws a titled box listing passed and failed checks.
func RenderReport(title, subtitle string, checks []Check) string {
	var b strings.Builder

	border := borderStyle()
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(activeSymbol)
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n")

	if subtitle != "" {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(subtitle)
		b.WriteString("\n")
	}

	if len(checks) > 0 {
		b.WriteString(border.Render(borderSide))
		b.WriteString("\n")
	}

	for _, check := range checks {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		if check.OK {
			b.WriteString(checkSymbol)
		} else {
			b.WriteString(red.Render(crossSymbol))
		}
		b.WriteString(" ")
		b.WriteString(check.Text)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}
