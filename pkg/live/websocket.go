package live

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
)

// Session is a live realtime voice session.
type Session interface {
	// SendAudio appends one frame of 16-bit little-endian mono PCM at the
	// wire rate to the input stream. The audio is base64 encoded before
	// sending.
	SendAudio(audio []byte) error

	// SendAudioBase64 appends already base64-encoded audio.
	SendAudioBase64(audioBase64 string) error

	// Events returns an iterator over server events. The iterator yields
	// events in arrival order until the session is closed or an error
	// occurs; after an error is yielded, iteration stops.
	Events() iter.Seq2[*ServerEvent, error]

	// Close closes the session connection. Safe to call multiple times.
	Close() error
}

// WireFormat is the PCM format expected for SendAudio payloads.
const WireFormat = pcm.L16Mono16K

// webSocketSession is the gorilla/websocket-backed Session.
type webSocketSession struct {
	conn      *websocket.Conn
	config    *SetupConfig
	closeCh   chan struct{}
	eventsCh  chan eventOrError
	closeOnce sync.Once
	mu        sync.Mutex
}

type eventOrError struct {
	event *ServerEvent
	err   error
}

func (c *Client) connect(ctx context.Context, config *SetupConfig) (*webSocketSession, error) {
	if config == nil {
		config = &SetupConfig{}
	}
	if config.Model == "" {
		config.Model = ModelFlashLive
	}
	if config.ResponseModality == "" {
		config.ResponseModality = ModalityAudio
	}

	url := fmt.Sprintf("%s?key=%s", c.config.wsURL, c.config.apiKey)

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.httpClient.Timeout,
	}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, &Error{
				Code:       "connection_failed",
				Message:    fmt.Sprintf("failed to connect: %v", err),
				HTTPStatus: resp.StatusCode,
			}
		}
		return nil, fmt.Errorf("live: failed to connect: %w", err)
	}

	session := &webSocketSession{
		conn:     conn,
		config:   config,
		closeCh:  make(chan struct{}),
		eventsCh: make(chan eventOrError, 100),
	}

	if err := session.sendSetup(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("live: setup: %w", err)
	}

	go session.readLoop()

	return session, nil
}

// sendSetup sends the one-time handshake frame.
func (s *webSocketSession) sendSetup() error {
	cfg := s.config
	payload := &setupPayload{
		Model: "models/" + cfg.Model,
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{cfg.ResponseModality},
		},
	}
	if cfg.Voice != "" {
		payload.GenerationConfig.SpeechConfig = &speechConfig{
			VoiceConfig: &voiceConfig{
				PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: cfg.Voice},
			},
		}
	}
	if cfg.SystemPrompt != "" {
		payload.SystemInstruction = &Content{
			Parts: []Part{{Text: cfg.SystemPrompt}},
		}
	}
	if cfg.InputTranscription {
		payload.InputTranscription = &struct{}{}
	}
	if cfg.OutputTranscription {
		payload.OutputTranscription = &struct{}{}
	}
	return s.sendFrame(&setupFrame{Setup: payload})
}

// SendAudio appends one frame of raw PCM to the input stream.
func (s *webSocketSession) SendAudio(audio []byte) error {
	return s.SendAudioBase64(pcm.EncodeBase64(audio))
}

// SendAudioBase64 appends already base64-encoded audio.
func (s *webSocketSession) SendAudioBase64(audioBase64 string) error {
	return s.sendFrame(&realtimeInputFrame{
		RealtimeInput: &realtimeInput{
			Audio: &InlineData{
				MIMEType: WireFormat.MIMEType(),
				Data:     audioBase64,
			},
		},
	})
}

// Events returns an iterator over server events.
func (s *webSocketSession) Events() iter.Seq2[*ServerEvent, error] {
	return func(yield func(*ServerEvent, error) bool) {
		for {
			select {
			case <-s.closeCh:
				return
			case item, ok := <-s.eventsCh:
				if !ok {
					return
				}
				if !yield(item.event, item.err) {
					return
				}
				if item.err != nil {
					return
				}
			}
		}
	}
}

// Close closes the session.
func (s *webSocketSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closeCh)
		err = s.conn.Close()
	})
	return err
}

// sendFrame sends one JSON frame to the server.
func (s *webSocketSession) sendFrame(frame any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		if b, err := json.Marshal(frame); err == nil {
			str := string(b)
			if len(str) > 500 {
				str = str[:500] + "..."
			}
			slog.Debug("sending frame", "content", str)
		}
	}

	return s.conn.WriteJSON(frame)
}

// readLoop reads frames from the WebSocket connection.
func (s *webSocketSession) readLoop() {
	defer close(s.eventsCh)

	for {
		select {
		case <-s.closeCh:
			return
		default:
		}

		_, message, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			case s.eventsCh <- eventOrError{err: fmt.Errorf("live: read: %w", err)}:
			}
			return
		}

		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			msgStr := string(message)
			if len(msgStr) > 1000 {
				msgStr = msgStr[:1000] + "..."
			}
			slog.Debug("received frame", "len", len(message), "content", msgStr)
		}

		event, err := parseEvent(message)
		if err != nil {
			select {
			case <-s.closeCh:
				return
			case s.eventsCh <- eventOrError{err: err}:
			}
			continue
		}

		select {
		case <-s.closeCh:
			return
		case s.eventsCh <- eventOrError{event: event}:
		}
	}
}

// parseEvent parses a raw JSON frame into a ServerEvent.
func parseEvent(message []byte) (*ServerEvent, error) {
	var event ServerEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return nil, fmt.Errorf("live: parse: %w", err)
	}
	event.Raw = message
	return &event, nil
}

// Ensure webSocketSession implements Session.
var _ Session = (*webSocketSession)(nil)
