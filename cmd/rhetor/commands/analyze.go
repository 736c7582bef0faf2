package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhetorlabs/rhetor/pkg/cli"
)

var analyzeTopic string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a saved session transcript",
	Long: `Score a session transcript saved with 'debate --save'.

The input file (YAML or JSON) holds the motion and the transcript
messages. The result is printed as a scorecard, or as JSON with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInputFile(); err != nil {
			return err
		}

		var session SessionFile
		if err := cli.LoadRequest(getInputFile(), &session); err != nil {
			return err
		}
		topic := session.Topic
		if analyzeTopic != "" {
			topic = analyzeTopic
		}
		if topic == "" {
			return fmt.Errorf("transcript has no topic, provide one with --topic")
		}

		cliCtx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("analyzing %d messages on %q", len(session.Messages), topic)
		return scoreSession(cmd, cliCtx, session.Messages, topic)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTopic, "topic", "", "override the motion stored in the transcript")
}
