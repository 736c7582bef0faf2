package coach

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the speaker of a transcript message.
type Role string

// Transcript roles.
const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// Message is one reconciled entry in the session transcript. A message is
// mutated in place while fragments for it keep arriving and is frozen once
// Final is set.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Final     bool      `json:"final" yaml:"final"`
}

// Fragment is one incremental transcription update from the transport.
// Text is cumulative: each fragment replaces, not extends, the text of the
// open message for its role.
type Fragment struct {
	Role  Role
	Text  string
	Final bool
}

// Transcript reconciles incremental fragments into an ordered message log.
//
// The rule: if the last message has the same role and is not final, the
// fragment replaces its text and updates its final flag; otherwise a new
// message is appended. A role switch or an explicit turn-complete signal
// closes out the open message as final even when no final fragment for it
// ever arrives.
type Transcript struct {
	mu   sync.Mutex
	now  func() time.Time
	msgs []*Message
}

// NewTranscript returns an empty transcript. now stamps CreatedAt on new
// messages; nil means time.Now.
func NewTranscript(now func() time.Time) *Transcript {
	if now == nil {
		now = time.Now
	}
	return &Transcript{now: now}
}

// Apply reconciles one fragment and returns a copy of the affected message.
func (t *Transcript) Apply(frag Fragment) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.msgs); n > 0 {
		last := t.msgs[n-1]
		if last.Role == frag.Role && !last.Final {
			last.Text = frag.Text
			last.Final = frag.Final
			return *last
		}
		// Role switch finalizes the open message.
		last.Final = true
	}

	msg := &Message{
		ID:        uuid.NewString(),
		Role:      frag.Role,
		Text:      frag.Text,
		CreatedAt: t.now(),
		Final:     frag.Final,
	}
	t.msgs = append(t.msgs, msg)
	return *msg
}

// CloseTurn finalizes the open message, if any. It returns a copy of the
// message it closed and whether one was open.
func (t *Transcript) CloseTurn() (Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.msgs); n > 0 && !t.msgs[n-1].Final {
		t.msgs[n-1].Final = true
		return *t.msgs[n-1], true
	}
	return Message{}, false
}

// Messages returns the ordered log as a snapshot.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, len(t.msgs))
	for i, m := range t.msgs {
		out[i] = *m
	}
	return out
}

// Len returns the number of messages in the log.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}
