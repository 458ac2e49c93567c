package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	tempDir := t.TempDir()

	systemPromptContent := "Test system prompt for skills analysis"
	userPromptContent := "Job requirements:\n%s\n\nCandidate skills:\n%s"

	systemPromptFile := filepath.Join(tempDir, "system.skills.md")
	userPromptFile := filepath.Join(tempDir, "user.skills.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			AnalyzeSkills: StageAIConfig{
				Prompts: StagePrompts{
					SystemFile: systemPromptFile,
					UserFile:   userPromptFile,
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	loaded := GetLoadedStagePrompts(StageAnalyzeSkills)

	if loaded.System != systemPromptContent {
		t.Errorf("Expected loaded system prompt content %q, got %q",
			systemPromptContent, loaded.System)
	}

	if loaded.User != userPromptContent {
		t.Errorf("Expected loaded user prompt content %q, got %q",
			userPromptContent, loaded.User)
	}

	// File paths stay on the config so the watcher can find them
	if config.AI.AnalyzeSkills.Prompts.SystemFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.AnalyzeSkills.Prompts.UserFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	tempDir := t.TempDir()

	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			GenerateReport: StageAIConfig{
				Prompts: StagePrompts{
					SystemFile: validFile,
				},
			},
		},
	}

	if err := config.validatePromptFiles(); err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	config.AI.GenerateReport.Prompts.SystemFile = filepath.Join(tempDir, "nonexistent.md")

	if err := config.validatePromptFiles(); err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loadedContent, err := loadPromptFromFile(testFile, "system", StageParseJob)
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}

	if loadedContent != content {
		t.Errorf("Expected content %q, got %q", content, loadedContent)
	}

	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte(""), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	if _, err := loadPromptFromFile(emptyFile, "system", StageParseJob); err == nil {
		t.Error("Expected error for empty file")
	}

	if _, err := loadPromptFromFile(filepath.Join(tempDir, "nonexistent.md"), "system", StageParseJob); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestStageConfigFallbacks(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.5-flash",
			Timeout:     60 * time.Second,
			APIKey:      "global-key",
			MaxRetries:  3,
			Temperature: 0.2,
		},
	}
	config.AI.GenerateReport.Model = "gemini-2.5-pro"

	cfg, err := config.StageConfig(StageGenerateReport)
	if err != nil {
		t.Fatalf("StageConfig() error = %v", err)
	}

	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("Expected stage override model, got %q", cfg.Model)
	}
	if cfg.APIKey != "global-key" {
		t.Errorf("Expected global API key fallback, got %q", cfg.APIKey)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.2 {
		t.Errorf("Expected global temperature fallback, got %v", cfg.Temperature)
	}
	if cfg.MaxRetries == nil || *cfg.MaxRetries != 3 {
		t.Errorf("Expected global maxRetries fallback, got %v", cfg.MaxRetries)
	}

	if _, err := config.StageConfig("no_such_stage"); err == nil {
		t.Error("Expected error for unknown stage")
	}
}

func TestStageNamesOrder(t *testing.T) {
	want := []string{
		"parse_job",
		"extract_resume",
		"analyze_skills",
		"evaluate_experience",
		"analyze_education",
		"analyze_cultural_fit",
		"generate_report",
	}
	if len(StageNames) != len(want) {
		t.Fatalf("Expected %d stages, got %d", len(want), len(StageNames))
	}
	for i, name := range want {
		if StageNames[i] != name {
			t.Errorf("Stage %d: expected %q, got %q", i, name, StageNames[i])
		}
	}
}
