package cli

import (
	"strings"
	"testing"

	"github.com/rhetorlabs/rhetor/pkg/coach/analysis"
)

func TestRenderScorecard(t *testing.T) {
	result := &analysis.Result{
		Score: 72, Logic: 70, Clarity: 75, Rebuttal: 60, Persuasion: 74, Delivery: 80,
		Confidence:  analysis.ConfidenceAssured,
		Proficiency: analysis.ProficiencySkilled,
		Archetype:   "The Builder",
		Insight:     "Strong framing throughout.",
		Strengths:   []string{"clear thesis"},
		Weaknesses:  []string{"few examples"},
		Suggestions: []string{"cite evidence"},
	}

	out := RenderScorecard("school uniforms", result)

	for _, want := range []string{
		"Debate Scorecard",
		"school uniforms",
		"Overall  72",
		"Rebuttal",
		"assured",
		"skilled",
		"The Builder",
		"clear thesis",
		"few examples",
		"cite evidence",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scorecard missing %q:\n%s", want, out)
		}
	}
}

func TestScorecard_barBounds(t *testing.T) {
	c := Scorecard{Styles: NewStyles(DefaultTheme)}
	// Out-of-range inputs must not panic or produce negative repeats.
	for _, score := range []int{-10, 0, 50, 100, 250} {
		if got := c.scoreBar(score); got == "" {
			t.Errorf("scoreBar(%d) empty", score)
		}
	}
}
