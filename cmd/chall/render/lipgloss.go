package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"chall/internal/format"
	"chall/internal/present"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

type LipglossRenderer struct {
	width int
	lang  string
	r     *lipgloss.Renderer

	titleStyle  lipgloss.Style
	dateStyle   lipgloss.Style
	labelStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
	activeStyle lipgloss.Style
	badgeStyles map[string]lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:       width,
		lang:        format.DefaultLang,
		r:           r,
		titleStyle:  r.NewStyle().Bold(true),
		dateStyle:   r.NewStyle().Faint(true),
		labelStyle:  r.NewStyle().Bold(true),
		mutedStyle:  r.NewStyle().Faint(true),
		activeStyle: r.NewStyle().Bold(true).Underline(true),
		badgeStyles: map[string]lipgloss.Style{
			"easy":   r.NewStyle().Foreground(lipgloss.Color("10")),
			"medium": r.NewStyle().Foreground(lipgloss.Color("11")),
			"hard":   r.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) WithLang(lang string) *LipglossRenderer {
	if lang != "" {
		r.lang = lang
	}
	return r
}

func (r *LipglossRenderer) Cards(cards []present.Card) string {
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = r.RenderCard(c)
	}
	return strings.Join(blocks, "\n\n")
}

func (r *LipglossRenderer) RenderCard(c present.Card) string {
	title := r.titleStyle.Render(c.Title)
	date := r.dateStyle.Render(c.Date)
	padding := max(1, r.width-lipgloss.Width(title)-lipgloss.Width(date))

	badgeStyle, ok := r.badgeStyles[string(c.Difficulty)]
	if !ok {
		badgeStyle = r.r.NewStyle()
	}

	lines := []string{
		title + strings.Repeat(" ", padding) + date,
		"  " + badgeStyle.Render("["+c.DifficultyLabel+"]") + " " + r.mutedStyle.Render("["+c.TopicLabel+"]"),
		"  " + c.Description,
		"  " + r.labelStyle.Render("Strategy:") + " " + c.Strategy,
		"  " + r.labelStyle.Render("Key learning:") + " " + c.KeyLearning,
	}
	if len(c.Tags) > 0 {
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = "#" + t
		}
		lines = append(lines, "  "+r.mutedStyle.Render(strings.Join(tags, " ")))
	}
	lines = append(lines, "  "+r.mutedStyle.Render(c.URL))

	return strings.Join(lines, "\n")
}

func (r *LipglossRenderer) NoResults() string {
	return r.titleStyle.Render("No challenges found.") + "\n" +
		r.mutedStyle.Render("Try adjusting your search or filters.")
}

func (r *LipglossRenderer) Pagination(p present.Pagination) string {
	var parts []string
	if p.HasPrev() {
		parts = append(parts, fmt.Sprintf("← Previous (%d)", p.Prev))
	}
	for _, b := range p.Pages {
		if b.Active {
			parts = append(parts, r.activeStyle.Render(fmt.Sprintf("[%d]", b.Number)))
		} else {
			parts = append(parts, fmt.Sprint(b.Number))
		}
	}
	if p.HasNext() {
		parts = append(parts, fmt.Sprintf("Next (%d) →", p.Next))
	}
	return strings.Join(parts, "  ")
}

func (r *LipglossRenderer) ResultsCount(c present.ResultsCount) string {
	return r.mutedStyle.Render(c.String())
}
