package live

import "encoding/json"

// ServerEvent is one inbound frame from the endpoint. A single frame may
// carry several aspects at once (audio plus a transcription fragment, for
// example); accessor methods expose each aspect independently so the caller
// can route them in a fixed order.
type ServerEvent struct {
	// SetupComplete is present once the server has accepted the setup frame.
	SetupComplete *SetupComplete `json:"setupComplete,omitzero"`

	// ServerContent carries model output: audio, transcriptions, and the
	// interruption and turn-complete signals.
	ServerContent *ServerContent `json:"serverContent,omitzero"`

	// GoAway announces that the server will close the connection soon.
	GoAway *GoAway `json:"goAway,omitzero"`

	// Raw is the undecoded frame, for debugging.
	Raw json.RawMessage `json:"-"`
}

// SetupComplete acknowledges the setup handshake.
type SetupComplete struct{}

// ServerContent is the model-output portion of a server event.
type ServerContent struct {
	ModelTurn           *Content       `json:"modelTurn,omitzero"`
	InputTranscription  *Transcription `json:"inputTranscription,omitzero"`
	OutputTranscription *Transcription `json:"outputTranscription,omitzero"`
	Interrupted         bool           `json:"interrupted,omitzero"`
	TurnComplete        bool           `json:"turnComplete,omitzero"`
}

// Transcription is a partial or final speech-to-text fragment for one
// direction. Fragments are cumulative: each one replaces the previous text of
// the same utterance.
type Transcription struct {
	Text     string `json:"text"`
	Finished bool   `json:"finished,omitzero"`
}

// GoAway announces imminent server-side disconnection.
type GoAway struct {
	TimeLeft string `json:"timeLeft,omitzero"`
}

// AudioChunks returns the base64-encoded audio payloads carried by this
// event, in order.
func (e *ServerEvent) AudioChunks() []string {
	if e.ServerContent == nil || e.ServerContent.ModelTurn == nil {
		return nil
	}
	var chunks []string
	for _, p := range e.ServerContent.ModelTurn.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			chunks = append(chunks, p.InlineData.Data)
		}
	}
	return chunks
}

// Interrupted reports whether this event carries the barge-in signal: the
// model is abandoning already-buffered audio to start a new turn.
func (e *ServerEvent) Interrupted() bool {
	return e.ServerContent != nil && e.ServerContent.Interrupted
}

// TurnComplete reports whether this event closes the model's turn.
func (e *ServerEvent) TurnComplete() bool {
	return e.ServerContent != nil && e.ServerContent.TurnComplete
}
