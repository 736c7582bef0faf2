package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rhetorlabs/rhetor/pkg/cli"
)

var (
	addProvider      string
	addAPIKey        string
	addLiveModel     string
	addAnalysisModel string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Manage rhetor configuration contexts, similar to kubectl contexts.`,
}

var addContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg := getConfig()

		switch addProvider {
		case cli.ProviderGemini, cli.ProviderOpenAI:
		default:
			return fmt.Errorf("unknown provider %q (want %s or %s)", addProvider, cli.ProviderGemini, cli.ProviderOpenAI)
		}

		ctx := &cli.Context{
			Provider:      addProvider,
			APIKey:        addAPIKey,
			LiveModel:     addLiveModel,
			AnalysisModel: addAnalysisModel,
		}
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}

		// First context becomes the default.
		if cfg.CurrentContext == "" {
			if err := cfg.UseContext(name); err != nil {
				return err
			}
		}

		cli.PrintSuccess("Context %q added", name)
		return nil
	},
}

var listContextsCmd = &cobra.Command{
	Use:   "list-contexts",
	Short: "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		names := cfg.ListContexts()
		if len(names) == 0 {
			cli.PrintInfo("No contexts configured. Add one with 'rhetor config add-context'")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tPROVIDER\tAPI KEY")
		for _, name := range names {
			ctx, err := cfg.GetContext(name)
			if err != nil {
				continue
			}
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			provider := ctx.Provider
			if provider == "" {
				provider = cli.ProviderGemini
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, name, provider, cli.MaskAPIKey(ctx.APIKey))
		}
		return w.Flush()
	},
}

var useContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := cfg.UseContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to context %q", args[0])
		return nil
	},
}

var deleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := cfg.DeleteContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Context %q deleted", args[0])
		return nil
	},
}

var currentContextCmd = &cobra.Command{
	Use:   "current-context",
	Short: "Show the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		ctx, err := cfg.GetCurrentContext()
		if err != nil {
			return err
		}

		view := struct {
			Name          string `yaml:"name" json:"name"`
			Provider      string `yaml:"provider" json:"provider"`
			APIKey        string `yaml:"api_key" json:"api_key"`
			LiveModel     string `yaml:"live_model,omitempty" json:"live_model,omitempty"`
			AnalysisModel string `yaml:"analysis_model,omitempty" json:"analysis_model,omitempty"`
		}{
			Name:          ctx.Name,
			Provider:      ctx.Provider,
			APIKey:        cli.MaskAPIKey(ctx.APIKey),
			LiveModel:     ctx.LiveModel,
			AnalysisModel: ctx.AnalysisModel,
		}
		return outputResult(view, getOutputFile(), outputJSON)
	},
}

func init() {
	addContextCmd.Flags().StringVar(&addProvider, "provider", cli.ProviderGemini, "analysis provider (gemini or openai)")
	addContextCmd.Flags().StringVar(&addAPIKey, "api-key", "", "API key (falls back to GEMINI_API_KEY / OPENAI_API_KEY)")
	addContextCmd.Flags().StringVar(&addLiveModel, "live-model", "", "realtime conversation model override")
	addContextCmd.Flags().StringVar(&addAnalysisModel, "analysis-model", "", "analysis model override")

	configCmd.AddCommand(addContextCmd)
	configCmd.AddCommand(listContextsCmd)
	configCmd.AddCommand(useContextCmd)
	configCmd.AddCommand(deleteContextCmd)
	configCmd.AddCommand(currentContextCmd)
}
