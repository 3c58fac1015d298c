package iocache

import (
	"testing"

	"github.com/huangsam/sprintlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "test_table", false},
		{"valid name with numbers", "test_table_123", false},
		{"valid name starting with underscore", "_test_table", false},
		{"valid mixed case", "TestTable_123", false},
		{"empty name", "", true},
		{"starts with number", "1table", true},
		{"contains hyphen", "test-table", true},
		{"contains space", "test table", true},
		{"injection attempt", "t; DROP TABLE users", true},
		{"contains quote", `t"able`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"cfd_cache"`, quoteTableName("cfd_cache", schema.SQLiteBackend))
	assert.Equal(t, `"cfd_cache"`, quoteTableName("cfd_cache", schema.PostgreSQLBackend))
	assert.Equal(t, "`cfd_cache`", quoteTableName("cfd_cache", schema.MySQLBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"?", "?", "?"}, placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, []string{"?", "?"}, placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders(schema.PostgreSQLBackend, 3))
	assert.Empty(t, placeholders(schema.PostgreSQLBackend, 0))
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
		wantErr bool
	}{
		{schema.SQLiteBackend, "sqlite", false},
		{schema.MySQLBackend, "mysql", false},
		{schema.PostgreSQLBackend, "pgx", false},
		{schema.NoneBackend, "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			got, err := driverFor(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
