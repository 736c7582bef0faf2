package analysis

import (
	"errors"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrNoParticipation is returned when the debater never said enough to
// evaluate. It is an outcome, not a failure: "nothing to score" is
// semantically distinct from "scored poorly", and callers branch on it to
// show a dedicated experience instead of persisting a misleading zero.
var ErrNoParticipation = errors.New("analysis: insufficient participation")

// MinWords is the minimum combined word count across the debater's messages
// for a session to be scorable. The threshold is a tuned heuristic, not a
// semantic boundary.
const MinWords = 5

// ConfidenceTier rates how assured the debater sounded.
type ConfidenceTier string

// Confidence tiers, lowest first.
const (
	ConfidenceTimid      ConfidenceTier = "timid"
	ConfidenceSteady     ConfidenceTier = "steady"
	ConfidenceAssured    ConfidenceTier = "assured"
	ConfidenceCommanding ConfidenceTier = "commanding"
)

// ProficiencyTier rates overall debating skill.
type ProficiencyTier string

// Proficiency tiers, lowest first.
const (
	ProficiencyNovice     ProficiencyTier = "novice"
	ProficiencyDeveloping ProficiencyTier = "developing"
	ProficiencySkilled    ProficiencyTier = "skilled"
	ProficiencyExpert     ProficiencyTier = "expert"
)

// Result is the structured outcome of one scored session. All scores are
// bounded to [0, 100].
type Result struct {
	// Score is the overall performance score.
	Score int `json:"score" yaml:"score"`

	// Sub-metric scores.
	Logic      int `json:"logic" yaml:"logic"`
	Clarity    int `json:"clarity" yaml:"clarity"`
	Rebuttal   int `json:"rebuttal" yaml:"rebuttal"`
	Persuasion int `json:"persuasion" yaml:"persuasion"`
	Delivery   int `json:"delivery" yaml:"delivery"`

	Confidence  ConfidenceTier  `json:"confidence" yaml:"confidence"`
	Proficiency ProficiencyTier `json:"proficiency" yaml:"proficiency"`

	// Archetype is a short label for the debater's style.
	Archetype string `json:"archetype" yaml:"archetype"`

	// Insight is a one-paragraph observation about the session.
	Insight string `json:"insight" yaml:"insight"`

	Strengths   []string `json:"strengths" yaml:"strengths"`
	Weaknesses  []string `json:"weaknesses" yaml:"weaknesses"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// clamp bounds every score to [0, 100] and defaults empty tiers to the
// lowest value so a sloppy model response still yields a presentable result.
func (r *Result) clamp() {
	for _, p := range []*int{&r.Score, &r.Logic, &r.Clarity, &r.Rebuttal, &r.Persuasion, &r.Delivery} {
		if *p < 0 {
			*p = 0
		} else if *p > 100 {
			*p = 100
		}
	}
	if r.Confidence == "" {
		r.Confidence = ConfidenceTimid
	}
	if r.Proficiency == "" {
		r.Proficiency = ProficiencyNovice
	}
}

// FallbackResult is returned whenever the structured request fails for any
// reason. It is deliberately all-zero with lowest tiers and a single string
// per list naming the failure, so a stored session is recognizably unscored
// rather than silently wrong.
func FallbackResult() *Result {
	return &Result{
		Confidence:  ConfidenceTimid,
		Proficiency: ProficiencyNovice,
		Archetype:   "Unscored",
		Insight:     "The session could not be analyzed. Your transcript is intact.",
		Strengths:   []string{"Analysis failed, so no strengths were recorded."},
		Weaknesses:  []string{"Analysis failed, so no weaknesses were recorded."},
		Suggestions: []string{"Try analyzing this session again later."},
	}
}

// Schema returns the fixed response schema sent with every analysis request.
var Schema = sync.OnceValue(func() *jsonschema.Schema {
	s, err := jsonschema.For[Result](nil)
	if err != nil {
		panic(err)
	}
	return s
})
