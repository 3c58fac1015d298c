package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/schema"
)

// Table names for run history.
const (
	analysisRunsTable = "sprintlens_analysis_runs"
	metricValuesTable = "sprintlens_metric_values"
)

// analysisTables lists the run history tables in creation order.
var analysisTables = []string{analysisRunsTable, metricValuesTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables creates the run history tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{analysisRunsTable, getCreateAnalysisRunsQuery(backend)},
		{metricValuesTable, getCreateMetricValuesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateAnalysisRunsQuery returns the CREATE TABLE query for sprintlens_analysis_runs.
func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(analysisRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				command VARCHAR(64) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_metrics_recorded INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				command TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_metrics_recorded INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				command TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_metrics_recorded INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateMetricValuesQuery returns the CREATE TABLE query for sprintlens_metric_values.
func getCreateMetricValuesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(metricValuesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				metric VARCHAR(64) NOT NULL,
				dimension VARCHAR(255) NOT NULL,
				value DOUBLE NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (analysis_id, metric, dimension)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				metric TEXT NOT NULL,
				dimension TEXT NOT NULL,
				value DOUBLE PRECISION NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (analysis_id, metric, dimension)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				metric TEXT NOT NULL,
				dimension TEXT NOT NULL,
				value REAL NOT NULL,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (analysis_id, metric, dimension)
			);
		`, quotedTableName)
	}
}

// BeginAnalysis creates a new run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(command string, startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	values := strings.Join(placeholders(as.backend, 3), ", ")
	query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES (%s)`, quotedTableName, values)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		err = as.db.QueryRow(query+" RETURNING analysis_id", command, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = as.db.Exec(query, command, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalMetrics int) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	p := placeholders(as.backend, 4)

	// First, get the start_time to calculate duration
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, p[0])
	startTime, err := as.scanTime(as.db.QueryRow(query, analysisID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_metrics_recorded = %s WHERE analysis_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3])
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalMetrics, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordMetrics stores the values of one run in a single transaction.
func (as *AnalysisStoreImpl) RecordMetrics(analysisID int64, recordedAt time.Time, values []schema.MetricValue) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil || len(values) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (analysis_id, metric, dimension, value, recorded_at) VALUES (%s)`,
		quoteTableName(metricValuesTable, as.backend), strings.Join(placeholders(as.backend, 5), ", "))

	tx, err := as.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare metric insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ts := formatTime(recordedAt, as.backend)
	for _, v := range values {
		if _, err := stmt.Exec(analysisID, v.Metric, v.Dimension, v.Value, ts); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert metric %s/%s: %w", v.Metric, v.Dimension, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metric values: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(analysisRunsTable, as.backend)

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)
	if err := as.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runsTable)
		var lastRunTime any
		if err := as.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := as.parseTime(lastRunTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = t

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runsTable)
		if status.OldestRunTime, err = as.scanTime(as.db.QueryRow(oldestRunQuery)); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		metricsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_metrics_recorded), 0) FROM %s", runsTable)
		if err := as.db.QueryRow(metricsQuery).Scan(&status.TotalMetricsRecorded); err != nil {
			return status, fmt.Errorf("failed to get total metrics recorded: %w", err)
		}
	}

	for _, table := range analysisTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		var count int64
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all runs from the store, oldest first.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, command, start_time, end_time, run_duration_ms, total_metrics_recorded, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var startTime, endTime any
		if err := rows.Scan(&record.AnalysisID, &record.Command, &startTime, &endTime,
			&record.RunDurationMs, &record.TotalMetricsRecorded, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		if record.StartTime, err = as.parseTime(startTime); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endTime != nil {
			t, err := as.parseTime(endTime)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &t
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllMetricRecords retrieves every recorded metric value.
func (as *AnalysisStoreImpl) GetAllMetricRecords() ([]schema.MetricRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, metric, dimension, value, recorded_at
		FROM %s ORDER BY analysis_id, metric, dimension`, quoteTableName(metricValuesTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.MetricRecord
	for rows.Next() {
		var record schema.MetricRecord
		var recordedAt any
		if err := rows.Scan(&record.AnalysisID, &record.Metric, &record.Dimension, &record.Value, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metric value: %w", err)
		}
		if record.RecordedAt, err = as.parseTime(recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metric values: %w", err)
	}
	return results, nil
}

// scanTime reads a single time column.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return as.parseTime(raw)
}

// parseTime normalizes a time column. SQLite stores RFC3339 text, the
// server backends return native values. MySQL without parseTime=true
// returns the DATETIME text as bytes.
func (as *AnalysisStoreImpl) parseTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeText(v)
	case []byte:
		return parseTimeText(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", raw)
	}
}

func parseTimeText(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05.999999", s)
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
