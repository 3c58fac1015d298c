package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/iocache"
	"github.com/huangsam/sprintlens/schema"
)

// analysisBackendConfig reads and validates the run history backend settings.
// An empty backend means tracking is disabled.
func analysisBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("analysis-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("analysis-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for run history operations.
func analysisSetup() error {
	backend, connStr, err := analysisBackendConfig()
	if err != nil {
		return err
	}

	// No result cache for run history commands
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetupWrapper loads configuration for migrations. It does NOT
// initialize stores or create tables, so migrations run on a fresh database.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	backend, connStr, err := analysisBackendConfig()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iocache.GetAnalysisDBFilePath()
	}
	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// analysisCmd focused on run history management.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage the run history and its exports",
	Long: `Manage the history of command runs.

When enabled with --analysis-backend, every view run stores:
- Run metadata (command, timestamps, configuration, duration)
- The metric values it produced (flow counts, committed/completed, velocity, hours)

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  sprintlens --analysis-backend sqlite analysis status
  sprintlens --analysis-backend sqlite analysis export --output-file history`,
}

// analysisClearCmd clears the run history.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all run history",
	Long: `Delete all stored runs and metric values.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  sprintlens analysis export --output-file backup
  sprintlens analysis clear`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFile := cfg.AnalysisDBConnect
		if dbFile == "" || cfg.AnalysisBackend != schema.SQLiteBackend {
			dbFile = iocache.GetAnalysisDBFilePath()
		}
		iocache.CloseStores()
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, dbFile, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows run history status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, run count, newest and oldest runs, metric values recorded
and table sizes of the run history.`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			fmt.Println("Run history is disabled.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports run history to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored runs and metric values to two Parquet files:
<output-file>.analysis_runs.parquet and <output-file>.metric_values.parquet.

Requires: --output-file parameter

Examples:
  sprintlens analysis export --output-file history
  duckdb -c "SELECT metric, avg(value) FROM read_parquet('history.metric_values.parquet') GROUP BY 1"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if err := iocache.ExecuteAnalysisExport(os.Stdout, store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the run history store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  sprintlens --analysis-backend sqlite analysis migrate
  sprintlens --analysis-backend sqlite analysis migrate --target-version 1
  sprintlens --analysis-backend sqlite analysis migrate --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(os.Stdout, cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
