package live

// Models supported by the realtime endpoint.
const (
	// ModelFlashLive is the default native-audio realtime model.
	ModelFlashLive = "gemini-2.0-flash-live-001"
)

// Response modalities.
const (
	ModalityText  = "TEXT"
	ModalityAudio = "AUDIO"
)

// Prebuilt voice names for audio output.
const (
	VoicePuck  = "Puck"
	VoiceKore  = "Kore"
	VoiceAoede = "Aoede"
	VoiceFenir = "Fenrir"
)

// SetupConfig declares the one-time session setup sent in the handshake
// frame.
type SetupConfig struct {
	// Model is the model ID to use. Default: ModelFlashLive.
	Model string

	// ResponseModality selects the output modality. Default: ModalityAudio.
	ResponseModality string

	// Voice is the prebuilt voice name for audio output.
	Voice string

	// SystemPrompt is the system instruction for the session.
	SystemPrompt string

	// InputTranscription enables transcription of the caller's audio.
	InputTranscription bool

	// OutputTranscription enables transcription of the model's audio.
	OutputTranscription bool
}

// Wire frames. Field names follow the endpoint's JSON protocol.

type setupFrame struct {
	Setup *setupPayload `json:"setup"`
}

type setupPayload struct {
	Model               string            `json:"model"`
	GenerationConfig    *generationConfig `json:"generationConfig,omitzero"`
	SystemInstruction   *Content          `json:"systemInstruction,omitzero"`
	InputTranscription  *struct{}         `json:"inputAudioTranscription,omitzero"`
	OutputTranscription *struct{}         `json:"outputAudioTranscription,omitzero"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitzero"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitzero"`
}

type speechConfig struct {
	VoiceConfig *voiceConfig `json:"voiceConfig,omitzero"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig *prebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitzero"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// Content is a list of parts making up one piece of model input or output.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one text or inline-data element of a Content.
type Part struct {
	Text       string      `json:"text,omitzero"`
	InlineData *InlineData `json:"inlineData,omitzero"`
}

// InlineData is a base64-encoded media payload.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type realtimeInputFrame struct {
	RealtimeInput *realtimeInput `json:"realtimeInput"`
}

type realtimeInput struct {
	Audio *InlineData `json:"audio,omitzero"`
}
