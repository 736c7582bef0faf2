// Package live implements the client side of a bidirectional realtime voice
// protocol over WebSocket.
//
// A session is established by dialing the endpoint and sending a one-time
// setup frame declaring the model, response modality, voice, system prompt,
// and transcription settings. After setup, the client streams base64-wrapped
// PCM audio frames outbound while the server streams back audio chunks,
// partial/final transcriptions for both directions, interruption signals, and
// turn-complete signals.
//
// Example usage:
//
//	client := live.NewClient(apiKey)
//	session, err := client.Connect(ctx, &live.SetupConfig{
//	    SystemPrompt: "You are a debate coach.",
//	    Voice:        live.VoiceKore,
//	})
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	for event, err := range session.Events() {
//	    if err != nil {
//	        return err
//	    }
//	    // route event
//	}
package live
