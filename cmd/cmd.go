// Package cmd defines the command-line interface for sprintlens.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(cfdCmd)
	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(velocityCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(helicopterCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("snapshot", "", "Path to a snapshot JSON file (default: built-in demo dataset)")
	rootCmd.PersistentFlags().String("project", "", "Only include issues of this project key")
	rootCmd.PersistentFlags().String("issue-type", "", "Only include issues of this type")
	rootCmd.PersistentFlags().String("status", "", "Only include issues currently in this status")
	rootCmd.PersistentFlags().String("created-after", "", "Only include issues created after this date (ISO8601, YYYY-MM-DD or time ago)")
	rootCmd.PersistentFlags().String("updated-after", "", "Only include issues updated after this date (ISO8601, YYYY-MM-DD or time ago)")
	rootCmd.PersistentFlags().String("unit", string(schema.PointsUnit), "Estimation unit: points or count")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("session-file", "", "Path to the session file (default: ~/.sprintlens_session.yaml)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of cfdCmd to Viper
	cfdCmd.Flags().String("end", "", "Window end in ISO8601, YYYY-MM-DD or time ago (default: now)")
	cfdCmd.Flags().Int("days", contract.DefaultWindowDays, "Number of days before the end to include")
	if err := viper.BindPFlags(cfdCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cfd flags", err)
	}

	// Bind all flags of sprintCmd to Viper
	sprintCmd.Flags().Int("sprint", 0, "Numeric id of the sprint to analyze")
	sprintCmd.Flags().String("assignee", "", "Account id for an extra per-assignee burndown")
	if err := viper.BindPFlags(sprintCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sprint flags", err)
	}

	// Bind all flags of dashboardCmd to Viper
	dashboardCmd.Flags().String("user", "", "Account id of the dashboard owner")
	if err := viper.BindPFlags(dashboardCmd.Flags()); err != nil {
		contract.LogFatal("Error binding dashboard flags", err)
	}

	// Bind all flags of suggestCmd to Viper
	suggestCmd.Flags().String("summary", "", "Summary of current usage (default: built from the snapshot)")
	suggestCmd.Flags().String("openai-api-key", "", "OpenAI API key (prefer SPRINTLENS_OPENAI_API_KEY)")
	suggestCmd.Flags().String("openai-model", contract.DefaultOpenAIModel, "Chat model used for suggestions")
	if err := viper.BindPFlags(suggestCmd.Flags()); err != nil {
		contract.LogFatal("Error binding suggest flags", err)
	}

	// Bind all flags of loginCmd to Viper
	loginCmd.Flags().String("url", "", "Tracker instance URL, e.g. https://example.atlassian.net")
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("api-token", "", "API token (prefer SPRINTLENS_API_TOKEN)")
	if err := viper.BindPFlags(loginCmd.Flags()); err != nil {
		contract.LogFatal("Error binding login flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
