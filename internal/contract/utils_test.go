package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/sprintlens/schema"
)

func TestGetVarianceColorLabel(t *testing.T) {
	tests := []struct {
		name     string
		variance float64
		label    string
	}{
		{"over", 2.5, schema.OverLabel},
		{"under", -3, schema.UnderLabel},
		{"on track", 0.25, schema.OnTrackLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetVarianceColorLabel(tt.variance), tt.label)
		})
	}
}

func TestGetBucketColorLabel(t *testing.T) {
	for _, status := range []string{"To Do", "In Review", "Resolved", "Blocked"} {
		t.Run(status, func(t *testing.T) {
			assert.Contains(t, GetBucketColorLabel(status), status)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	assert.Contains(t, GetCacheDBFilePath(), ".sprintlens_cache.db")
	assert.Contains(t, GetAnalysisDBFilePath(), ".sprintlens_analysis.db")
	assert.NotEqual(t, GetCacheDBFilePath(), GetAnalysisDBFilePath())
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{"short text untouched", "Login page", 20, "Login page"},
		{"long text gets ellipsis", "Implement user authentication", 10, "Impleme..."},
		{"tiny width untouched", "abcdef", 3, "abcdef"},
		{"multibyte runes", "Überprüfung der Daten", 8, "Überp..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input     string
		want      bool
		expectErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// FuzzTruncateText checks the result never exceeds the requested width.
func FuzzTruncateText(f *testing.F) {
	f.Add("Fix login bug", 8)
	f.Add("", 0)
	f.Add("日本語のテキスト", 5)

	f.Fuzz(func(t *testing.T, text string, width int) {
		got := TruncateText(text, width)
		if width > 3 && len([]rune(got)) > width {
			t.Fatalf("TruncateText(%q, %d) = %q exceeds width", text, width, got)
		}
	})
}
