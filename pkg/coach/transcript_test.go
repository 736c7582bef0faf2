package coach

import (
	"testing"
	"time"
)

func TestTranscript_cumulativeFragments(t *testing.T) {
	tr := NewTranscript(nil)

	frags := []Fragment{
		{Role: RoleUser, Text: "a"},
		{Role: RoleUser, Text: "ab"},
		{Role: RoleUser, Text: "abc", Final: true},
		{Role: RoleModel, Text: "x", Final: true},
	}
	for _, f := range frags {
		tr.Apply(f)
	}

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != RoleUser || msgs[0].Text != "abc" || !msgs[0].Final {
		t.Errorf("first message = %+v", msgs[0])
	}
	if msgs[1].Role != RoleModel || msgs[1].Text != "x" || !msgs[1].Final {
		t.Errorf("second message = %+v", msgs[1])
	}
	if msgs[0].ID == msgs[1].ID || msgs[0].ID == "" {
		t.Error("messages should carry distinct non-empty ids")
	}
}

func TestTranscript_roleSwitchFinalizesOpenMessage(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Apply(Fragment{Role: RoleModel, Text: "partial answer"})
	tr.Apply(Fragment{Role: RoleUser, Text: "interjection"})

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if !msgs[0].Final {
		t.Error("role switch should finalize the open model message")
	}
	if msgs[1].Final {
		t.Error("new user message should still be open")
	}
}

func TestTranscript_closeTurn(t *testing.T) {
	tr := NewTranscript(nil)

	if _, ok := tr.CloseTurn(); ok {
		t.Error("closing an empty transcript should be a no-op")
	}

	tr.Apply(Fragment{Role: RoleModel, Text: "thinking out"})
	msg, ok := tr.CloseTurn()
	if !ok || !msg.Final || msg.Text != "thinking out" {
		t.Errorf("CloseTurn = %+v, %v", msg, ok)
	}

	// Already-final log: nothing to close.
	if _, ok := tr.CloseTurn(); ok {
		t.Error("second CloseTurn should find nothing open")
	}

	// The next fragment for the same role starts a new message.
	tr.Apply(Fragment{Role: RoleModel, Text: "next turn"})
	if tr.Len() != 2 {
		t.Errorf("len = %d, want 2", tr.Len())
	}
}

func TestTranscript_createdAtFromClock(t *testing.T) {
	at := time.Unix(42, 0)
	tr := NewTranscript(func() time.Time { return at })
	msg := tr.Apply(Fragment{Role: RoleUser, Text: "hi"})
	if !msg.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", msg.CreatedAt, at)
	}
}
