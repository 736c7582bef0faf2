package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhetorlabs/rhetor/pkg/cli"
	"github.com/rhetorlabs/rhetor/pkg/coach"
	"github.com/rhetorlabs/rhetor/pkg/coach/analysis"
	"github.com/rhetorlabs/rhetor/pkg/live"
)

var (
	debateTopic    string
	debateStyle    string
	debateDuration time.Duration
	debateAudio    string
	debateRate     int
	debateSave     string
	debateNoScore  bool
)

var debateCmd = &cobra.Command{
	Use:   "debate",
	Short: "Run a live debate coaching session",
	Long: `Run a real-time voice sparring session against an AI coach.

Your side of the debate is streamed from a raw PCM file (16-bit
little-endian mono) at real-time rate; the coach's spoken replies are
written to the output file as 24kHz PCM. The session ends when the
duration elapses, the input audio and coach turns run out, or Ctrl-C.

When the session ends the transcript is scored and a scorecard is
printed, unless --no-score is set.`,
	RunE: runDebate,
}

func init() {
	debateCmd.Flags().StringVar(&debateTopic, "topic", "", "debate motion to argue (required)")
	debateCmd.Flags().StringVar(&debateStyle, "style", "supportive", "coaching style: supportive or adversarial")
	debateCmd.Flags().DurationVar(&debateDuration, "duration", 3*time.Minute, "session length")
	debateCmd.Flags().StringVar(&debateAudio, "audio", "", "raw PCM file with your side of the debate (required)")
	debateCmd.Flags().IntVar(&debateRate, "rate", 16000, "input sample rate: 16000, 24000 or 48000")
	debateCmd.Flags().StringVar(&debateSave, "save", "", "transcript file (default: ~/.rhetor/sessions/<timestamp>.yaml)")
	debateCmd.Flags().BoolVar(&debateNoScore, "no-score", false, "skip the post-session analysis")
	debateCmd.MarkFlagRequired("topic")
	debateCmd.MarkFlagRequired("audio")
}

func runDebate(cmd *cobra.Command, args []string) error {
	cliCtx, err := getContext()
	if err != nil {
		return err
	}
	key := cliCtx.ResolveAPIKey()
	if key == "" {
		return fmt.Errorf("no API key configured for context %q", cliCtx.Name)
	}

	style, err := parseStyle(debateStyle)
	if err != nil {
		return err
	}
	format, err := formatForRate(debateRate)
	if err != nil {
		return err
	}

	in, err := os.Open(debateAudio)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer in.Close()

	outPath := getOutputFile()
	if outPath == "" {
		outPath = "reply.pcm"
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// The engine closes the sink, and with it out, during teardown.

	done := make(chan struct{})
	var once sync.Once

	eng, err := coach.NewEngine(coach.EngineConfig{
		Dialer: coach.ClientDialer{Client: live.NewClient(key)},
		OpenSource: func() (coach.Source, error) {
			return coach.NewReaderSource(in, format, coach.WithPacing())
		},
		Sink: coach.NewWriterSink(out),
		Callbacks: coach.Callbacks{
			OnTranscript: func(text string, isUser, isFinal bool) {
				if !isFinal {
					printVerbose("partial: %s", text)
					return
				}
				speaker := "coach"
				if isUser {
					speaker = "you"
				}
				fmt.Printf("%s: %s\n", speaker, text)
			},
			OnStatusChange: func(connected bool) {
				if connected {
					cli.PrintSuccess("Session connected, coach audio goes to %s", outPath)
					return
				}
				once.Do(func() { close(done) })
			},
			OnError: func(err error) {
				cli.PrintError("%v", err)
			},
		},
	})
	if err != nil {
		return err
	}

	printVerbose("connecting: topic=%q style=%s duration=%s", debateTopic, style, debateDuration)
	if err := eng.Connect(cmd.Context(), coach.Config{
		Topic:    debateTopic,
		Style:    style,
		Duration: debateDuration,
		Model:    cliCtx.LiveModel,
	}); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-done:
	case <-sigCh:
		cli.PrintInfo("Stopping session")
		eng.Stop()
		<-done
	}

	messages := eng.Messages()
	cli.PrintInfo("Session ended after %s, %d transcript messages", cli.FormatDuration(eng.Elapsed()), len(messages))

	if len(messages) > 0 {
		savePath := debateSave
		if savePath == "" {
			paths, err := cli.NewPaths()
			if err != nil {
				return fmt.Errorf("failed to locate sessions directory: %w", err)
			}
			if err := paths.EnsureSessionsDir(); err != nil {
				return fmt.Errorf("failed to create sessions directory: %w", err)
			}
			savePath = paths.SessionPath(time.Now().Format("session-20060102-150405.yaml"))
		}
		session := SessionFile{Topic: debateTopic, Style: style, Messages: messages}
		if err := cli.Output(session, cli.OutputOptions{Format: cli.FormatYAML, File: savePath}); err != nil {
			return fmt.Errorf("failed to save transcript: %w", err)
		}
		cli.PrintSuccess("Transcript saved to %s", savePath)
	}

	if debateNoScore {
		return nil
	}
	return scoreSession(cmd, cliCtx, messages, debateTopic)
}

// scoreSession runs the analysis pipeline over a finished session and
// prints the scorecard. Shared by 'debate' and 'analyze'.
func scoreSession(cmd *cobra.Command, cliCtx *cli.Context, messages []coach.Message, topic string) error {
	gen, err := newGenerator(cmd.Context(), cliCtx)
	if err != nil {
		return err
	}
	analyzer := &analysis.Analyzer{Generator: gen}

	result, err := analyzer.Analyze(cmd.Context(), messages, topic)
	if errors.Is(err, analysis.ErrNoParticipation) {
		cli.PrintWarning("Not enough debater speech to score this session")
		return nil
	}
	if err != nil {
		return err
	}

	if outputJSON {
		return outputResult(result, "", true)
	}
	fmt.Println(cli.RenderScorecard(topic, result))
	return nil
}
