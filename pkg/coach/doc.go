// Package coach implements the real-time debate coaching session engine.
//
// The engine owns the session lifecycle (Idle → Connecting → Connected →
// Disconnecting → Idle) and mediates every other component: it drives the
// capture pipeline once the transport reports open, streams encoded
// microphone audio outbound while connected, and routes every inbound
// transport frame to the playback scheduler (audio) or the transcript
// reconciler (text). On explicit stop or duration exhaustion it halts
// capture, flushes playback, closes the transport, releases the microphone,
// and leaves the reconciled message log ready for analysis
// (package coach/analysis).
//
// At most one session may be connected process-wide; the Guard type makes
// that a hard invariant rather than a convention.
package coach
