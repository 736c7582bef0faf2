package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testServer is a minimal realtime endpoint: it records the setup frame and
// plays back a scripted sequence of server frames.
type testServer struct {
	srv      *httptest.Server
	script   []string
	setupCh  chan map[string]any
	framesCh chan map[string]any
}

func newTestServer(t *testing.T, script ...string) *testServer {
	t.Helper()
	ts := &testServer{
		script:   script,
		setupCh:  make(chan map[string]any, 1),
		framesCh: make(chan map[string]any, 16),
	}
	upgrader := websocket.Upgrader{}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var setup map[string]any
		if err := conn.ReadJSON(&setup); err != nil {
			t.Errorf("read setup: %v", err)
			return
		}
		ts.setupCh <- setup

		for _, frame := range ts.script {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}

		// Keep reading client frames until the client closes.
		for {
			var frame map[string]any
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			select {
			case ts.framesCh <- frame:
			default:
			}
		}
	}))
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.srv.URL, "http")
}

func dialTest(t *testing.T, ts *testServer, cfg *SetupConfig) Session {
	t.Helper()
	client := NewClient("test-key", WithWebSocketURL(ts.wsURL()))
	session, err := client.Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestConnect_sendsSetupFrame(t *testing.T) {
	ts := newTestServer(t, `{"setupComplete":{}}`)
	dialTest(t, ts, &SetupConfig{
		Voice:               VoiceKore,
		SystemPrompt:        "You are a debate coach.",
		InputTranscription:  true,
		OutputTranscription: true,
	})

	select {
	case setup := <-ts.setupCh:
		payload, ok := setup["setup"].(map[string]any)
		if !ok {
			t.Fatalf("no setup payload in %v", setup)
		}
		if got := payload["model"]; got != "models/"+ModelFlashLive {
			t.Errorf("model = %v", got)
		}
		if _, ok := payload["inputAudioTranscription"]; !ok {
			t.Error("input transcription not requested")
		}
		if _, ok := payload["outputAudioTranscription"]; !ok {
			t.Error("output transcription not requested")
		}
		gc, _ := payload["generationConfig"].(map[string]any)
		if gc == nil {
			t.Fatal("no generationConfig")
		}
		mods, _ := gc["responseModalities"].([]any)
		if len(mods) != 1 || mods[0] != ModalityAudio {
			t.Errorf("responseModalities = %v", mods)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("setup frame never arrived")
	}
}

func TestSession_eventsAndAudio(t *testing.T) {
	audio := `{"serverContent":{"modelTurn":{"parts":[{"inlineData":{"mimeType":"audio/pcm;rate=24000","data":"AAAA"}}]}}}`
	interrupted := `{"serverContent":{"interrupted":true}}`
	turnDone := `{"serverContent":{"turnComplete":true}}`
	ts := newTestServer(t, `{"setupComplete":{}}`, audio, interrupted, turnDone)
	session := dialTest(t, ts, nil)

	var got []*ServerEvent
	for event, err := range session.Events() {
		if err != nil {
			t.Fatalf("event error: %v", err)
		}
		got = append(got, event)
		if len(got) == 4 {
			break
		}
	}

	if got[0].SetupComplete == nil {
		t.Error("first event is not setupComplete")
	}
	if chunks := got[1].AudioChunks(); len(chunks) != 1 || chunks[0] != "AAAA" {
		t.Errorf("audio chunks = %v", chunks)
	}
	if !got[2].Interrupted() {
		t.Error("third event should be the interruption signal")
	}
	if !got[3].TurnComplete() {
		t.Error("fourth event should be turn-complete")
	}
}

func TestSession_sendAudio(t *testing.T) {
	ts := newTestServer(t, `{"setupComplete":{}}`)
	session := dialTest(t, ts, nil)

	if err := session.SendAudio([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("SendAudio: %v", err)
	}

	select {
	case frame := <-ts.framesCh:
		b, _ := json.Marshal(frame)
		s := string(b)
		if !strings.Contains(s, "realtimeInput") {
			t.Errorf("frame missing realtimeInput: %s", s)
		}
		if !strings.Contains(s, "audio/pcm;rate=16000") {
			t.Errorf("frame missing wire mime type: %s", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("audio frame never arrived")
	}
}

func TestSession_closeIdempotent(t *testing.T) {
	ts := newTestServer(t, `{"setupComplete":{}}`)
	session := dialTest(t, ts, nil)
	if err := session.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
