package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/rhetorlabs/rhetor/pkg/coach"
)

type fakeGenerator struct {
	calls   int
	prompt  string
	schema  *jsonschema.Schema
	payload string
	err     error
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *jsonschema.Schema) ([]byte, error) {
	g.calls++
	g.prompt = prompt
	g.schema = schema
	if g.err != nil {
		return nil, g.err
	}
	return []byte(g.payload), nil
}

func userMsg(text string) coach.Message {
	return coach.Message{Role: coach.RoleUser, Text: text, Final: true}
}

const validPayload = `{
	"score": 72, "logic": 70, "clarity": 75, "rebuttal": 60,
	"persuasion": 74, "delivery": 80,
	"confidence": "assured", "proficiency": "skilled",
	"archetype": "The Builder", "insight": "Strong framing throughout.",
	"strengths": ["clear thesis"], "weaknesses": ["few examples"],
	"suggestions": ["cite evidence"]
}`

func TestAnalyzer_participationGate(t *testing.T) {
	tests := []struct {
		name     string
		messages []coach.Message
		scorable bool
	}{
		{"no messages", nil, false},
		{"only coach talked", []coach.Message{{Role: coach.RoleModel, Text: "hello there my friend, speak up"}}, false},
		{"four words", []coach.Message{userMsg("I disagree with that")}, false},
		{"five words", []coach.Message{userMsg("I disagree with that point")}, true},
		{"split across messages", []coach.Message{userMsg("I disagree"), userMsg("with that point")}, true},
		{"system messages ignored", []coach.Message{
			{Role: coach.RoleSystem, Text: "one two three four five six"},
			userMsg("too short"),
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{payload: validPayload}
			a := &Analyzer{Generator: gen}
			result, err := a.Analyze(context.Background(), tt.messages, "topic")
			if !tt.scorable {
				require.ErrorIs(t, err, ErrNoParticipation)
				require.Nil(t, result)
				require.Zero(t, gen.calls, "gated sessions must not issue a request")
				return
			}
			require.NoError(t, err)
			require.Equal(t, 1, gen.calls)
			require.Equal(t, 72, result.Score)
		})
	}
}

func TestAnalyzer_promptRendering(t *testing.T) {
	gen := &fakeGenerator{payload: validPayload}
	a := &Analyzer{Generator: gen}

	msgs := []coach.Message{
		{Role: coach.RoleSystem, Text: "internal setup note"},
		userMsg("Uniforms erase economic markers between students"),
		{Role: coach.RoleModel, Text: "Do they, or do they just hide them?", Final: true},
	}
	_, err := a.Analyze(context.Background(), msgs, "school uniforms")
	require.NoError(t, err)

	require.Contains(t, gen.prompt, `Motion: "school uniforms"`)
	require.Contains(t, gen.prompt, "Debater: Uniforms erase economic markers between students")
	require.Contains(t, gen.prompt, "Coach: Do they, or do they just hide them?")
	require.NotContains(t, gen.prompt, "internal setup note")
	require.NotNil(t, gen.schema)
	require.Contains(t, gen.schema.Required, "score")
}

func TestAnalyzer_requestFailureYieldsFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network down")}
	a := &Analyzer{Generator: gen}

	result, err := a.Analyze(context.Background(), []coach.Message{userMsg("one two three four five")}, "t")
	require.NoError(t, err, "request failures must not surface to the caller")
	require.Equal(t, FallbackResult(), result)
}

func TestAnalyzer_parseErrorYieldsFallback(t *testing.T) {
	gen := &fakeGenerator{payload: "definitely not json {{{"}
	a := &Analyzer{Generator: gen}

	result, err := a.Analyze(context.Background(), []coach.Message{userMsg("one two three four five")}, "t")
	require.NoError(t, err)
	require.Equal(t, FallbackResult(), result)
	require.Zero(t, result.Score)
	require.Equal(t, ConfidenceTimid, result.Confidence)
	require.Equal(t, ProficiencyNovice, result.Proficiency)
}

func TestAnalyzer_repairsSloppyJSON(t *testing.T) {
	// Trailing comma plus a code fence: repairable, not fallback-worthy.
	gen := &fakeGenerator{payload: "```json\n{\"score\": 55, \"confidence\": \"steady\",}\n```"}
	a := &Analyzer{Generator: gen}

	result, err := a.Analyze(context.Background(), []coach.Message{userMsg("one two three four five")}, "t")
	require.NoError(t, err)
	require.Equal(t, 55, result.Score)
	require.Equal(t, ConfidenceSteady, result.Confidence)
}

func TestAnalyzer_clampsOutOfRangeScores(t *testing.T) {
	gen := &fakeGenerator{payload: `{"score": 150, "logic": -20, "clarity": 100}`}
	a := &Analyzer{Generator: gen}

	result, err := a.Analyze(context.Background(), []coach.Message{userMsg("one two three four five")}, "t")
	require.NoError(t, err)
	require.Equal(t, 100, result.Score)
	require.Zero(t, result.Logic)
	require.Equal(t, 100, result.Clarity)
	require.Equal(t, ConfidenceTimid, result.Confidence, "missing tier defaults to lowest")
}

func TestGeminiConvSchema(t *testing.T) {
	gs := geminiConvSchema(Schema())
	require.NotNil(t, gs)
	require.Contains(t, gs.Properties, "score")
	require.Contains(t, gs.Properties, "suggestions")
	require.Equal(t, "ARRAY", string(gs.Properties["suggestions"].Type))
	require.Equal(t, "INTEGER", string(gs.Properties["score"].Type))
}

func TestFormatStrictSchema(t *testing.T) {
	s := formatStrictSchema(Schema().CloneSchemas())
	require.NotNil(t, s.AdditionalProperties)
	require.ElementsMatch(t, s.Required, []string{
		"score", "logic", "clarity", "rebuttal", "persuasion", "delivery",
		"confidence", "proficiency", "archetype", "insight",
		"strengths", "weaknesses", "suggestions",
	})
}
