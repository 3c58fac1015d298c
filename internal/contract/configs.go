package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/sprintlens/schema"
)

// Default values for configuration.
const (
	DefaultWindowDays  = 30
	MaxWindowDays      = 3650
	DefaultPrecision   = 1
	DefaultOpenAIModel = "gpt-4.1-mini"
)

// CacheGranularity defines the time granularity for caching results.
// This ensures consistent cache key generation and time window alignment across
// the application and tests.
const CacheGranularity = time.Hour

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// IssueFilter narrows the issue set before any aggregation.
// Zero values mean "no constraint".
type IssueFilter struct {
	ProjectKey   string
	IssueType    string
	Status       string
	CreatedAfter time.Time
	UpdatedAfter time.Time
}

// IsZero reports whether the filter has no constraints.
func (f IssueFilter) IsZero() bool {
	return f.ProjectKey == "" && f.IssueType == "" && f.Status == "" &&
		f.CreatedAfter.IsZero() && f.UpdatedAfter.IsZero()
}

// Config holds the runtime configuration for every command.
// This struct remains the "final, validated" config.
type Config struct {
	SnapshotPath string    // empty means the built-in demo dataset
	Now          time.Time // the instant all relative inputs resolve against

	WindowEnd  time.Time
	WindowDays int
	SprintID   int
	Unit       schema.EstimationUnit
	Assignee   string
	User       string
	Filter     IssueFilter

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	SessionFile string
	Session     *Session // nil when logged out

	OpenAIKey   string
	OpenAIModel string
	Summary     string

	raw *ConfigRawInput // inputs the time fields were resolved from
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Snapshot          string `mapstructure:"snapshot"`
	OutputFile        string `mapstructure:"output-file"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	Project           string `mapstructure:"project"`
	IssueType         string `mapstructure:"issue-type"`
	Status            string `mapstructure:"status"`
	CreatedAfter      string `mapstructure:"created-after"`
	UpdatedAfter      string `mapstructure:"updated-after"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	SessionFile       string `mapstructure:"session-file"`

	// --- Fields from cfdCmd.Flags() ---
	End  string `mapstructure:"end"`
	Days int    `mapstructure:"days"`

	// --- Fields from sprintCmd and velocityCmd ---
	Sprint   int    `mapstructure:"sprint"`
	Unit     string `mapstructure:"unit"`
	Assignee string `mapstructure:"assignee"`

	// --- Fields from dashboardCmd.Flags(), may live in the config file ---
	User string `mapstructure:"user"`

	// --- Fields from suggestCmd.Flags() ---
	OpenAIKey   string `mapstructure:"openai-api-key"`
	OpenAIModel string `mapstructure:"openai-model"`
	Summary     string `mapstructure:"summary"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Session != nil {
		s := *c.Session
		clone.Session = &s
	}
	return &clone
}

// At returns a copy re-anchored on now. The default window end and relative
// dates such as "3 days ago" are resolved again; absolute dates stay put.
func (c *Config) At(now time.Time) (*Config, error) {
	clone := c.Clone()
	clone.Now = now
	if c.raw == nil {
		if c.WindowEnd.IsZero() || c.WindowEnd.Equal(c.Now) {
			clone.WindowEnd = now
		}
		return clone, nil
	}
	if err := processTimeWindow(clone, c.raw); err != nil {
		return nil, err
	}
	if err := processFilter(clone, c.raw); err != nil {
		return nil, err
	}
	return clone, nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. now anchors every relative date.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.Now = now
	raw := *input
	cfg.raw = &raw
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeWindow(cfg, input); err != nil {
		return err
	}
	if err := processFilter(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-date fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.SnapshotPath = strings.TrimSpace(input.Snapshot)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Assignee = strings.TrimSpace(input.Assignee)
	cfg.User = strings.TrimSpace(input.User)
	cfg.SessionFile = input.SessionFile
	cfg.OpenAIKey = input.OpenAIKey
	cfg.Summary = input.Summary

	cfg.OpenAIModel = input.OpenAIModel
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Sprint and unit ---
	if input.Sprint < 0 {
		return fmt.Errorf("sprint must be a positive id (received %d)", input.Sprint)
	}
	cfg.SprintID = input.Sprint

	cfg.Unit = schema.EstimationUnit(strings.ToLower(input.Unit))
	if cfg.Unit == "" {
		cfg.Unit = schema.PointsUnit
	}
	if _, ok := schema.ValidEstimationUnits[cfg.Unit]; !ok {
		return fmt.Errorf("invalid unit '%s'. must be points, count", input.Unit)
	}

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processTimeWindow resolves the end of the cumulative flow window and its length.
func processTimeWindow(cfg *Config, input *ConfigRawInput) error {
	cfg.WindowEnd = cfg.Now
	if input.End != "" {
		t, err := ParseDate(input.End, cfg.Now)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago': %w", input.End, err)
		}
		cfg.WindowEnd = t
	}

	if input.Days < 0 || input.Days > MaxWindowDays {
		return fmt.Errorf("days must be between 0 and %d (received %d)", MaxWindowDays, input.Days)
	}
	cfg.WindowDays = input.Days
	return nil
}

// processFilter converts the basic issue filters.
func processFilter(cfg *Config, input *ConfigRawInput) error {
	cfg.Filter = IssueFilter{
		ProjectKey: strings.ToUpper(strings.TrimSpace(input.Project)),
		IssueType:  strings.TrimSpace(input.IssueType),
		Status:     strings.TrimSpace(input.Status),
	}
	if input.CreatedAfter != "" {
		t, err := ParseDate(input.CreatedAfter, cfg.Now)
		if err != nil {
			return fmt.Errorf("invalid created-after value '%s': %w", input.CreatedAfter, err)
		}
		cfg.Filter.CreatedAfter = t
	}
	if input.UpdatedAfter != "" {
		t, err := ParseDate(input.UpdatedAfter, cfg.Now)
		if err != nil {
			return fmt.Errorf("invalid updated-after value '%s': %w", input.UpdatedAfter, err)
		}
		cfg.Filter.UpdatedAfter = t
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
