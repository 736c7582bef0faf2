package coach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
	"github.com/rhetorlabs/rhetor/pkg/live"
)

// State is the session lifecycle state.
type State int32

// Lifecycle states. Transitions only move forward through a session:
// Idle → Connecting → Connected → Disconnecting → Idle. A failed connect
// skips Connected.
const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrSessionActive is returned by Connect when a session is already
// connecting or connected.
var ErrSessionActive = errors.New("coach: a session is already active")

// Callbacks notify the caller of session activity. All callbacks are
// optional and are invoked synchronously from the engine's event path, so
// they must return quickly.
type Callbacks struct {
	// OnTranscript fires for every reconciled transcript update.
	OnTranscript func(text string, isUser, isFinal bool)

	// OnStatusChange fires when the session connects and disconnects.
	OnStatusChange func(connected bool)

	// OnAudioLevel fires with the RMS level of each captured frame.
	OnAudioLevel func(level float64)

	// OnError fires on setup failure and on unexpected transport loss.
	OnError func(err error)
}

// Dialer opens a live transport session. It exists so engine tests can
// substitute a scripted transport for the websocket client.
type Dialer interface {
	Dial(ctx context.Context, config *live.SetupConfig) (live.Session, error)
}

// ClientDialer adapts a live.Client to the Dialer interface.
type ClientDialer struct {
	Client *live.Client
}

// Dial opens a session on the wrapped client.
func (d ClientDialer) Dial(ctx context.Context, config *live.SetupConfig) (live.Session, error) {
	return d.Client.Connect(ctx, config)
}

// EngineConfig wires an Engine's collaborators.
type EngineConfig struct {
	// Dialer opens the transport. Required.
	Dialer Dialer

	// OpenSource acquires the capture source ("the microphone") for a
	// session. Required. Called once per Connect; the engine closes the
	// returned source on teardown.
	OpenSource func() (Source, error)

	// Sink plays scheduled model audio. Required. When the sink implements
	// io.Closer the engine closes it on teardown.
	Sink Sink

	// Guard enforces single-session exclusivity. Nil means DefaultGuard.
	Guard *Guard

	// Clock drives playback scheduling and the duration timer. Nil means
	// the system clock.
	Clock Clock

	// Callbacks receive session notifications.
	Callbacks Callbacks
}

// Engine runs coaching sessions. It owns the lifecycle state machine and
// mediates between the capture source, the transport, the playback
// scheduler, and the transcript.
//
// An Engine is reusable: after Stop returns it is Idle and Connect may be
// called again. Methods are safe for concurrent use.
type Engine struct {
	dialer     Dialer
	openSource func() (Source, error)
	sink       Sink
	guard      *Guard
	clock      Clock
	cb         Callbacks
	inMeter    *pcm.LevelMeter

	mu            sync.Mutex
	state         State
	session       live.Session
	source        Source
	scheduler     *Scheduler
	transcript    *Transcript
	durationTimer Timer
	elapsed       int
	targetSecs    int
}

// NewEngine creates an engine from cfg.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Dialer == nil {
		return nil, errors.New("coach: engine: dialer is required")
	}
	if cfg.OpenSource == nil {
		return nil, errors.New("coach: engine: capture source opener is required")
	}
	if cfg.Sink == nil {
		return nil, errors.New("coach: engine: playback sink is required")
	}
	guard := cfg.Guard
	if guard == nil {
		guard = DefaultGuard
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		dialer:     cfg.Dialer,
		openSource: cfg.OpenSource,
		sink:       cfg.Sink,
		guard:      guard,
		clock:      clock,
		cb:         cfg.Callbacks,
		inMeter:    &pcm.LevelMeter{},
	}, nil
}

// Connect starts a session. It acquires the guard, opens the capture
// source, dials the transport, and on success begins streaming both
// directions. Setup failures tear down whatever was built, fire OnError,
// and are returned; they are never retried.
func (e *Engine) Connect(ctx context.Context, config Config) error {
	if err := config.validate(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return ErrSessionActive
	}
	if !e.guard.Acquire(e) {
		e.mu.Unlock()
		return ErrSessionActive
	}
	e.state = StateConnecting
	e.transcript = NewTranscript(func() time.Time { return e.clock.Now() })
	e.scheduler = NewScheduler(e.sink, pcm.L16Mono24K, e.clock)
	e.elapsed = 0
	e.targetSecs = int(config.Duration / time.Second)
	e.mu.Unlock()

	source, err := e.openSource()
	if err != nil {
		return e.failConnect(fmt.Errorf("coach: acquire capture source: %w", err))
	}
	e.mu.Lock()
	// A Stop that raced the open already ran teardown with no source stored;
	// this source is ours to release.
	if e.state != StateConnecting || e.guard.Holder() != e {
		e.mu.Unlock()
		source.Close()
		return fmt.Errorf("coach: session stopped during connect")
	}
	e.source = source
	e.mu.Unlock()

	session, err := e.dialer.Dial(ctx, &live.SetupConfig{
		Model:               config.Model,
		ResponseModality:    live.ModalityAudio,
		Voice:               config.Style.Voice(),
		SystemPrompt:        config.SystemPrompt(),
		InputTranscription:  true,
		OutputTranscription: true,
	})
	if err != nil {
		return e.failConnect(fmt.Errorf("coach: connect transport: %w", err))
	}

	e.mu.Lock()
	// A Stop that raced the dial wins: the session it never saw is closed,
	// not adopted.
	if e.state != StateConnecting || e.guard.Holder() != e {
		e.mu.Unlock()
		session.Close()
		return fmt.Errorf("coach: session stopped during connect")
	}
	e.session = session
	e.state = StateConnected
	e.mu.Unlock()

	if e.cb.OnStatusChange != nil {
		e.cb.OnStatusChange(true)
	}

	go e.captureLoop(source, session)
	go e.eventLoop(session)
	if e.targetSecs > 0 {
		e.scheduleTick()
	}
	return nil
}

// failConnect tears down a partially built session and reports err.
func (e *Engine) failConnect(err error) error {
	e.mu.Lock()
	e.state = StateDisconnecting
	e.mu.Unlock()
	e.teardown(false)
	if e.cb.OnError != nil {
		e.cb.OnError(err)
	}
	return err
}

// Stop ends the session. It is idempotent and safe from any goroutine and
// any state; when no session is active it does nothing. Every teardown step
// is best-effort so a failing step never blocks the ones after it.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.state == StateIdle || e.state == StateDisconnecting {
		e.mu.Unlock()
		return nil
	}
	wasConnected := e.state == StateConnected
	e.state = StateDisconnecting
	e.mu.Unlock()

	e.teardown(wasConnected)
	return nil
}

// teardown releases everything a session built, in dependency order:
// duration timer, capture source, playback scheduler, transport, output
// contexts, guard. Runs with state already at Disconnecting, which is what
// stops the capture and event loops from acting mid-teardown.
func (e *Engine) teardown(wasConnected bool) {
	e.mu.Lock()
	timer := e.durationTimer
	e.durationTimer = nil
	source := e.source
	e.source = nil
	scheduler := e.scheduler
	session := e.session
	e.session = nil
	e.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if source != nil {
		if err := source.Close(); err != nil {
			slog.Warn("closing capture source failed", "error", err)
		}
	}
	if scheduler != nil {
		scheduler.Close()
	}
	if session != nil {
		if err := session.Close(); err != nil {
			slog.Warn("closing transport failed", "error", err)
		}
	}
	if c, ok := e.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Warn("closing playback sink failed", "error", err)
		}
	}
	if e.guard.Holder() == e {
		e.guard.Release()
	}

	e.mu.Lock()
	e.state = StateIdle
	e.mu.Unlock()

	if wasConnected && e.cb.OnStatusChange != nil {
		e.cb.OnStatusChange(false)
	}
}

// owns reports whether session is the one the engine is currently connected
// through. Loops left over from an earlier session fail this check and must
// not touch the engine.
func (e *Engine) owns(session live.Session) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StateConnected && e.session == session
}

// transportFailed handles an unexpected transport error or close. During a
// deliberate stop the transport goes away by design and the signal is
// ignored, as is anything reported by a session that is no longer current;
// otherwise it triggers the same teardown as Stop, then OnError.
func (e *Engine) transportFailed(session live.Session, err error) {
	e.mu.Lock()
	if e.state != StateConnected || e.session != session {
		e.mu.Unlock()
		return
	}
	e.state = StateDisconnecting
	e.mu.Unlock()

	e.teardown(true)
	if e.cb.OnError != nil {
		e.cb.OnError(err)
	}
}

// scheduleTick arms the once-per-second duration timer.
func (e *Engine) scheduleTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateConnected {
		return
	}
	e.durationTimer = e.clock.AfterFunc(time.Second, e.tick)
}

func (e *Engine) tick() {
	e.mu.Lock()
	if e.state != StateConnected {
		e.mu.Unlock()
		return
	}
	e.elapsed++
	done := e.elapsed >= e.targetSecs
	e.mu.Unlock()

	if done {
		e.Stop()
		return
	}
	e.scheduleTick()
}

// captureLoop streams microphone frames to the transport until the source
// drains, the send fails, or the session leaves Connected.
func (e *Engine) captureLoop(source Source, session live.Session) {
	for {
		frame, err := source.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) && e.owns(session) {
				slog.Warn("capture read failed", "error", err)
			}
			return
		}

		// Lifecycle check at the capture entry point: frames racing a
		// disconnect, or left over from a previous session, are dropped
		// here, whatever the caller believes.
		if !e.owns(session) {
			return
		}

		e.inMeter.Update(frame)
		if e.cb.OnAudioLevel != nil {
			e.cb.OnAudioLevel(pcm.Level(frame))
		}

		if err := session.SendAudio(pcm.EncodeFloat32(frame)); err != nil {
			if e.owns(session) {
				slog.Warn("sending audio frame failed", "error", err)
			}
			return
		}
	}
}

// eventLoop consumes transport events in arrival order and routes them to
// the scheduler and transcript.
func (e *Engine) eventLoop(session live.Session) {
	for event, err := range session.Events() {
		if err != nil {
			e.transportFailed(session, err)
			return
		}
		if !e.owns(session) {
			continue
		}
		e.route(event)
	}
	// The event stream ended without an error frame: either we closed the
	// socket ourselves or the server dropped it.
	e.transportFailed(session, errors.New("coach: transport closed"))
}

func (e *Engine) route(event *live.ServerEvent) {
	e.mu.Lock()
	scheduler := e.scheduler
	transcript := e.transcript
	e.mu.Unlock()
	if scheduler == nil || transcript == nil {
		return
	}

	if event.GoAway != nil {
		slog.Warn("server announced imminent disconnect")
	}

	// Barge-in: the model was interrupted, so everything queued is stale.
	if event.Interrupted() {
		scheduler.Flush()
	}

	for _, b64 := range event.AudioChunks() {
		data, err := pcm.DecodeBase64(b64)
		if err != nil {
			slog.Warn("dropping undecodable audio chunk", "error", err)
			continue
		}
		if err := scheduler.Enqueue(data); err != nil {
			slog.Debug("audio chunk refused", "error", err)
		}
	}

	if sc := event.ServerContent; sc != nil {
		if t := sc.InputTranscription; t != nil && (t.Text != "" || t.Finished) {
			e.emitTranscript(transcript.Apply(Fragment{Role: RoleUser, Text: t.Text, Final: t.Finished}))
		}
		if t := sc.OutputTranscription; t != nil && (t.Text != "" || t.Finished) {
			e.emitTranscript(transcript.Apply(Fragment{Role: RoleModel, Text: t.Text, Final: t.Finished}))
		}
	}

	if event.TurnComplete() {
		if msg, ok := transcript.CloseTurn(); ok {
			e.emitTranscript(msg)
		}
	}
}

func (e *Engine) emitTranscript(msg Message) {
	if e.cb.OnTranscript != nil {
		e.cb.OnTranscript(msg.Text, msg.Role == RoleUser, msg.Final)
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// InputLevel returns the RMS level of the most recent captured frame.
func (e *Engine) InputLevel() float64 {
	return e.inMeter.Load()
}

// OutputLevel returns the RMS level of the most recent played chunk.
func (e *Engine) OutputLevel() float64 {
	e.mu.Lock()
	scheduler := e.scheduler
	e.mu.Unlock()
	if scheduler == nil {
		return 0
	}
	return scheduler.Level()
}

// Messages returns the transcript of the current or most recent session.
func (e *Engine) Messages() []Message {
	e.mu.Lock()
	transcript := e.transcript
	e.mu.Unlock()
	if transcript == nil {
		return nil
	}
	return transcript.Messages()
}

// Elapsed returns how much of the session duration has ticked by.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Duration(e.elapsed) * time.Second
}
