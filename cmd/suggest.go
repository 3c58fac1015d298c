package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/sprintlens/core"
	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/suggest"
)

// newSuggester builds the language model client from the validated config.
func newSuggester(c *contract.Config) contract.Suggester {
	return suggest.NewOpenAIClient(c.OpenAIKey, c.OpenAIModel)
}

// suggestCmd asks the language model for configuration suggestions.
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask a language model how to improve the tracker configuration.",
	Long: `Send a summary of current tracker usage to a chat model and print its
suggestions about issue types, custom fields and workflow.

Without --summary, a summary is built from the snapshot's projects and issues.

Examples:
  SPRINTLENS_OPENAI_API_KEY=sk-... sprintlens suggest
  sprintlens suggest --summary "Two software projects, bugs tracked in a separate board."`,
	PreRunE: viewSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSuggest(rootCtx, cfg, cacheManager, newSuggester(cfg)); err != nil {
			contract.LogFatal("Cannot run suggestions", err)
		}
	},
}
