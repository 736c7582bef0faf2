package commands

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
	"github.com/rhetorlabs/rhetor/pkg/cli"
	"github.com/rhetorlabs/rhetor/pkg/coach"
	"github.com/rhetorlabs/rhetor/pkg/coach/analysis"
)

// SessionFile is the saved form of one session: the topic and the reconciled
// transcript. Produced by 'debate --save', consumed by 'analyze'.
type SessionFile struct {
	Topic    string          `json:"topic" yaml:"topic"`
	Style    coach.Style     `json:"style,omitempty" yaml:"style,omitempty"`
	Messages []coach.Message `json:"messages" yaml:"messages"`
}

// newGenerator creates the analysis backend selected by the context.
func newGenerator(ctx context.Context, cliCtx *cli.Context) (analysis.Generator, error) {
	key := cliCtx.ResolveAPIKey()
	if key == "" {
		return nil, fmt.Errorf("no API key configured for context %q", cliCtx.Name)
	}
	switch cliCtx.Provider {
	case cli.ProviderOpenAI:
		client := openai.NewClient(option.WithAPIKey(key))
		return &analysis.OpenAIGenerator{Client: &client, Model: cliCtx.AnalysisModel}, nil
	default:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create analysis client: %w", err)
		}
		return &analysis.GeminiGenerator{Client: client, Model: cliCtx.AnalysisModel}, nil
	}
}

// formatForRate maps a sample rate flag to a PCM format.
func formatForRate(rate int) (pcm.Format, error) {
	switch rate {
	case 16000:
		return pcm.L16Mono16K, nil
	case 24000:
		return pcm.L16Mono24K, nil
	case 48000:
		return pcm.L16Mono48K, nil
	}
	return 0, fmt.Errorf("unsupported sample rate %d (want 16000, 24000 or 48000)", rate)
}

// parseStyle accepts both full style names and their short forms.
func parseStyle(s string) (coach.Style, error) {
	switch s {
	case "", "supportive", string(coach.StyleSupportive):
		return coach.StyleSupportive, nil
	case "adversarial", string(coach.StyleAdversarial):
		return coach.StyleAdversarial, nil
	}
	return "", fmt.Errorf("unknown style %q (want supportive or adversarial)", s)
}
