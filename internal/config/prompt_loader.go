package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// stagePromptRefs returns the per-stage prompt configuration blocks keyed by
// stage name.
func (c *Config) stagePromptRefs() map[string]*StagePrompts {
	return map[string]*StagePrompts{
		StageParseJob:           &c.AI.ParseJob.Prompts,
		StageExtractResume:      &c.AI.ExtractResume.Prompts,
		StageAnalyzeSkills:      &c.AI.AnalyzeSkills.Prompts,
		StageEvaluateExperience: &c.AI.EvaluateExperience.Prompts,
		StageAnalyzeEducation:   &c.AI.AnalyzeEducation.Prompts,
		StageAnalyzeCulturalFit: &c.AI.AnalyzeCulturalFit.Prompts,
		StageGenerateReport:     &c.AI.GenerateReport.Prompts,
	}
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	loadedCount := 0
	for stage, prompts := range c.stagePromptRefs() {
		if prompts.SystemFile != "" {
			content, err := loadPromptFromFile(prompts.SystemFile, "system", stage)
			if err != nil {
				return fmt.Errorf("failed to load %s system prompt: %w", stage, err)
			}
			loadedPrompts.setSystem(stage, content)
			loadedCount++
		}
		if prompts.UserFile != "" {
			content, err := loadPromptFromFile(prompts.UserFile, "user", stage)
			if err != nil {
				return fmt.Errorf("failed to load %s user prompt: %w", stage, err)
			}
			loadedPrompts.setUser(stage, content)
			loadedCount++
		}
	}

	if loadedCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", loadedCount)
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, stage string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, stage, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, stage, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, stage, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, stage, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, stage, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType, stage string) {
		if filePath == "" {
			return
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, stage, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, stage, absPath))
		}
	}

	for stage, prompts := range c.stagePromptRefs() {
		validateFile(prompts.SystemFile, "system", stage)
		validateFile(prompts.UserFile, "user", stage)
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
