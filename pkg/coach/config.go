package coach

import (
	"fmt"
	"time"

	"github.com/rhetorlabs/rhetor/pkg/live"
)

// Style selects the coaching persona for a session.
type Style string

// Coaching styles.
const (
	// StyleSupportive encourages the speaker and builds on their points.
	StyleSupportive Style = "supportive-coach"
	// StyleAdversarial challenges the speaker and attacks weak arguments.
	StyleAdversarial Style = "adversarial-coach"
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	switch s {
	case StyleSupportive, StyleAdversarial:
		return true
	}
	return false
}

// Voice returns the speech voice preset for this style.
func (s Style) Voice() string {
	if s == StyleAdversarial {
		return live.VoiceFenir
	}
	return live.VoiceAoede
}

// Config describes one coaching session.
type Config struct {
	// Topic is the debate motion under discussion.
	Topic string `json:"topic" yaml:"topic"`

	// Style is the coaching persona. Defaults to StyleSupportive.
	Style Style `json:"style" yaml:"style"`

	// Duration is the target session length. The engine stops the session
	// itself once it elapses. Zero means no limit.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Model overrides the default conversational model.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

const supportivePrompt = `You are a supportive debate coach running a live practice session.
The motion under debate is: %q.
Let the student argue their side. Respond briefly, acknowledge strong points,
and ask one probing question at a time to help them sharpen their reasoning.
Keep every reply under three sentences so the student does most of the talking.`

const adversarialPrompt = `You are an adversarial debate sparring partner running a live practice session.
The motion under debate is: %q.
Argue the opposing side with conviction. Attack weak reasoning directly,
demand evidence, and never concede a point without a fight.
Keep every reply under three sentences so the student does most of the talking.`

// SystemPrompt renders the persona instruction for this session.
func (c *Config) SystemPrompt() string {
	tmpl := supportivePrompt
	if c.Style == StyleAdversarial {
		tmpl = adversarialPrompt
	}
	return fmt.Sprintf(tmpl, c.Topic)
}

func (c *Config) validate() error {
	if c.Topic == "" {
		return fmt.Errorf("coach: config: topic is required")
	}
	if c.Style == "" {
		c.Style = StyleSupportive
	}
	if !c.Style.Valid() {
		return fmt.Errorf("coach: config: unknown style %q", c.Style)
	}
	if c.Duration < 0 {
		return fmt.Errorf("coach: config: negative duration")
	}
	return nil
}
