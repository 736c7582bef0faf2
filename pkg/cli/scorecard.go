package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rhetorlabs/rhetor/pkg/coach/analysis"
)

// Theme defines the color scheme for terminal rendering.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
	Bar     lipgloss.Color // Score bar fill color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Bar:     lipgloss.Color("#00b87a"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Bar   lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Bar:   lipgloss.NewStyle().Foreground(t.Bar),
		Dim:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

const scoreBarWidth = 20

// Scorecard renders an analysis result for the terminal.
type Scorecard struct {
	Styles Styles
	Topic  string
	Result *analysis.Result
}

// Render returns the styled scorecard.
func (c Scorecard) Render() string {
	r := c.Result
	var sb strings.Builder

	sb.WriteString(c.Styles.Title.Render("Debate Scorecard"))
	sb.WriteString("\n")
	sb.WriteString(c.Styles.Dim.Render("Motion: " + c.Topic))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "%s  %s\n\n",
		c.Styles.Label.Render(fmt.Sprintf("Overall %3d", r.Score)),
		c.scoreBar(r.Score))

	metrics := []struct {
		name  string
		score int
	}{
		{"Logic", r.Logic},
		{"Clarity", r.Clarity},
		{"Rebuttal", r.Rebuttal},
		{"Persuasion", r.Persuasion},
		{"Delivery", r.Delivery},
	}
	for _, m := range metrics {
		fmt.Fprintf(&sb, "%-11s %3d  %s\n", m.name, m.score, c.scoreBar(m.score))
	}

	fmt.Fprintf(&sb, "\nConfidence:  %s\nProficiency: %s\nArchetype:   %s\n",
		r.Confidence, r.Proficiency, r.Archetype)
	if r.Insight != "" {
		sb.WriteString("\n" + r.Insight + "\n")
	}

	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + c.Styles.Label.Render(label) + "\n")
		for _, s := range items {
			sb.WriteString("  - " + s + "\n")
		}
	}
	writeList("Strengths", r.Strengths)
	writeList("Weaknesses", r.Weaknesses)
	writeList("Suggestions", r.Suggestions)

	return sb.String()
}

func (c Scorecard) scoreBar(score int) string {
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	filled := score * scoreBarWidth / 100
	return c.Styles.Bar.Render(strings.Repeat("█", filled)) +
		c.Styles.Dim.Render(strings.Repeat("░", scoreBarWidth-filled))
}

// RenderScorecard renders a result with the default theme.
func RenderScorecard(topic string, result *analysis.Result) string {
	return Scorecard{
		Styles: NewStyles(DefaultTheme),
		Topic:  topic,
		Result: result,
	}.Render()
}
