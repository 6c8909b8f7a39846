package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score int
		label string
	}{
		{"low", 30, LowValue},
		{"moderate", 50, ModerateValue},
		{"high", 70, HighValue},
		{"critical", 90, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
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

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".graveyard_history.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestResolveGitHubToken(t *testing.T) {
	t.Run("explicit token wins", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		assert.Equal(t, "flag-token", ResolveGitHubToken("flag-token"))
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		assert.Equal(t, "env-token", ResolveGitHubToken(""))
	})

	t.Run("empty when nothing set", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		assert.Empty(t, ResolveGitHubToken(""))
	})
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{
			name:     "short path unchanged",
			path:     "/api/users",
			maxWidth: 20,
			expected: "/api/users",
		},
		{
			name:     "exact width unchanged",
			path:     "/api/users",
			maxWidth: 10,
			expected: "/api/users",
		},
		{
			name:     "long path truncated from the left",
			path:     "/api/v2/organizations/members/invitations",
			maxWidth: 20,
			expected: "...mbers/invitations",
		},
		{
			name:     "tiny width unchanged",
			path:     "/api/users",
			maxWidth: 3,
			expected: "/api/users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.expected, result)
			if tt.maxWidth > 3 {
				assert.LessOrEqual(t, len([]rune(result)), tt.maxWidth)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", "yes", true, false},
		{"no", "no", false, false},
		{"true", "true", true, false},
		{"false", "false", false, false},
		{"one", "1", true, false},
		{"zero", "0", false, false},
		{"mixed case", "YES", true, false},
		{"empty", "", false, true},
		{"garbage", "maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
