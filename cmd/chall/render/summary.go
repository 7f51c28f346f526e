package render

import (
	"fmt"
	"strings"

	"chall/internal/format"
	"chall/internal/present"

	lipglossv2 "charm.land/lipgloss/v2"
)

func (r *LipglossRenderer) RenderSummary(s present.Summary) string {
	box := lipglossv2.NewStyle().
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("8")).
		Padding(0, 1)
	number := lipglossv2.NewStyle().Bold(true)
	label := lipglossv2.NewStyle().Faint(true)

	stat := func(n int, name string) string {
		return box.Render(number.Render(fmt.Sprint(n)) + " " + label.Render(name))
	}

	row := lipglossv2.JoinHorizontal(lipglossv2.Top,
		stat(s.Total, "Total"),
		stat(s.Easy, "Easy"),
		stat(s.Medium, "Medium"),
		stat(s.Hard, "Hard"),
	)

	if len(s.Topics) == 0 {
		return row + "\n"
	}

	topics := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		topics[i] = fmt.Sprintf("%s %s", number.Render(fmt.Sprint(t.Count)), format.Label(t.Topic, r.lang))
	}
	return row + "\n" + label.Render("Topics:") + " " + strings.Join(topics, "  ·  ") + "\n"
}
