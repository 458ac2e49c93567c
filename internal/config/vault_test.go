package config

import (
	"os"
	"path/filepath"
	"testing"

	"hiresight/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *errors.Logger {
	logger, _ := errors.New("debug")
	return logger
}

// Test parseVersionValue function
func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		path        string
		expected    int64
		expectError bool
	}{
		{
			name:     "int64 value",
			input:    int64(42),
			path:     "test/path",
			expected: 42,
		},
		{
			name:     "float64 value",
			input:    float64(42.0),
			path:     "test/path",
			expected: 42,
		},
		{
			name:     "string value",
			input:    "42",
			path:     "test/path",
			expected: 42,
		},
		{
			name:        "invalid string value",
			input:       "not-a-number",
			path:        "test/path",
			expectError: true,
		},
		{
			name:        "unsupported type",
			input:       []string{"42"},
			path:        "test/path",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, tt.path)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// Test applyGeminiKeyToConfig function
func TestApplyGeminiKeyToConfig(t *testing.T) {
	config := &Config{}

	geminiKey := "test-gemini-key"
	applyGeminiKeyToConfig(config, geminiKey)

	assert.Equal(t, geminiKey, config.AI.APIKey)
	assert.Equal(t, geminiKey, config.AI.ParseJob.APIKey)
	assert.Equal(t, geminiKey, config.AI.ExtractResume.APIKey)
	assert.Equal(t, geminiKey, config.AI.AnalyzeSkills.APIKey)
	assert.Equal(t, geminiKey, config.AI.EvaluateExperience.APIKey)
	assert.Equal(t, geminiKey, config.AI.AnalyzeEducation.APIKey)
	assert.Equal(t, geminiKey, config.AI.AnalyzeCulturalFit.APIKey)
	assert.Equal(t, geminiKey, config.AI.GenerateReport.APIKey)
}

func TestApplyGeminiKeyToConfigWithExistingKeys(t *testing.T) {
	existingReportKey := "existing-report-key"
	config := &Config{
		AI: AIConfig{
			GenerateReport: StageAIConfig{APIKey: existingReportKey},
		},
	}

	geminiKey := "test-gemini-key"
	applyGeminiKeyToConfig(config, geminiKey)

	assert.Equal(t, geminiKey, config.AI.APIKey)
	assert.Equal(t, existingReportKey, config.AI.GenerateReport.APIKey) // Should not overwrite existing
	assert.Equal(t, geminiKey, config.AI.ParseJob.APIKey)
	assert.Equal(t, geminiKey, config.AI.AnalyzeSkills.APIKey)
}

// Test resolveVaultToken function
func TestResolveVaultToken(t *testing.T) {
	logger := newTestLogger()

	t.Run("token from config", func(t *testing.T) {
		config := VaultConfig{
			Token: "direct-token",
		}

		token, err := resolveVaultToken(config, logger)
		assert.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "vault-token")
		err := os.WriteFile(tokenFile, []byte("  file-token  \n"), 0600)
		require.NoError(t, err)

		config := VaultConfig{
			TokenFile: tokenFile,
		}

		token, err := resolveVaultToken(config, logger)
		assert.NoError(t, err)
		assert.Equal(t, "file-token", token) // Should be trimmed
	})

	t.Run("missing token file", func(t *testing.T) {
		config := VaultConfig{
			TokenFile: "/nonexistent/token/file",
		}

		_, err := resolveVaultToken(config, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read vault token file")
	})

	t.Run("no token provided", func(t *testing.T) {
		config := VaultConfig{}

		_, err := resolveVaultToken(config, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})

	t.Run("empty token from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "empty-token")
		err := os.WriteFile(tokenFile, []byte("   \n  \n"), 0600)
		require.NoError(t, err)

		config := VaultConfig{
			TokenFile: tokenFile,
		}

		_, err = resolveVaultToken(config, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, newTestLogger())
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestGetSecretV2NilClient(t *testing.T) {
	var vc *VaultClient
	_, err := vc.GetSecretV2("secret/data/hiresight")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vault client not initialized")
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{}
	err := ApplyVaultSecrets(config, newTestLogger())
	assert.NoError(t, err)
	assert.Empty(t, config.AI.APIKey)
}

func TestApplyVaultSecretsEnabledRequiresToken(t *testing.T) {
	config := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Secrets: VaultSecrets{GeminiKey: "secret/data/hiresight/gemini"},
		},
	}
	err := ApplyVaultSecrets(config, newTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault token is required")
}

func TestVaultKeyTakesPrecedenceOverEnvFallbacks(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "")

	config := &Config{}
	applyGeminiKeyToConfig(config, "vault-key")
	config.applyFallbacks()

	assert.Equal(t, "vault-key", config.AI.APIKey)
	assert.Equal(t, "vault-key", config.AI.ParseJob.APIKey)
}

func TestEnvFallbackUsedWithoutVaultKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "")

	config := &Config{}
	config.applyFallbacks()

	assert.Equal(t, "env-key", config.AI.APIKey)
}
