package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/rhetorlabs/rhetor/pkg/coach"
)

// Generator issues one non-streaming structured-output request and returns
// the raw JSON the model produced.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *jsonschema.Schema) ([]byte, error)
}

// Analyzer scores finished sessions through a Generator.
type Analyzer struct {
	Generator Generator
}

// Analyze scores one session transcript. It returns ErrNoParticipation when
// the debater's combined word count is below MinWords; any other failure of
// the underlying request yields FallbackResult with a nil error, never an
// error to the caller.
func (a *Analyzer) Analyze(ctx context.Context, messages []coach.Message, topic string) (*Result, error) {
	if participantWords(messages) < MinWords {
		return nil, ErrNoParticipation
	}

	prompt := renderPrompt(messages, topic)
	raw, err := a.Generator.GenerateJSON(ctx, prompt, Schema())
	if err != nil {
		slog.Warn("analysis request failed, using fallback result", "error", err)
		return FallbackResult(), nil
	}

	var result Result
	if err := unmarshalJSON(raw, &result); err != nil {
		slog.Warn("analysis response unparseable, using fallback result", "error", err)
		return FallbackResult(), nil
	}
	result.clamp()
	return &result, nil
}

// participantWords counts the words the debater actually said.
func participantWords(messages []coach.Message) int {
	var n int
	for _, m := range messages {
		if m.Role == coach.RoleUser {
			n += len(strings.Fields(m.Text))
		}
	}
	return n
}

const rubric = `You are scoring a debate practice session. The debater argued the motion
below against a live coach. Score the debater only, never the coach.

Score each metric from 0 to 100, where 50 is an average casual debater:
logic (soundness of arguments), clarity (structure and wording), rebuttal
(handling of counterarguments), persuasion (how convincing the case was),
and delivery (pace and fluency as reflected in the transcript). The overall
score weighs all five. Pick the confidence tier (timid, steady, assured,
commanding) and proficiency tier (novice, developing, skilled, expert) that
fit best, a short archetype label for the debater's style, one insight
paragraph, and up to three strengths, weaknesses, and suggestions each.`

// renderPrompt builds the analysis prompt: rubric, motion, then the
// role-prefixed transcript with system messages excluded.
func renderPrompt(messages []coach.Message, topic string) string {
	var sb strings.Builder
	sb.WriteString(rubric)
	fmt.Fprintf(&sb, "\n\nMotion: %q\n\nTranscript:\n", topic)
	for _, m := range messages {
		switch m.Role {
		case coach.RoleUser:
			fmt.Fprintf(&sb, "Debater: %s\n", m.Text)
		case coach.RoleModel:
			fmt.Fprintf(&sb, "Coach: %s\n", m.Text)
		}
	}
	return sb.String()
}
