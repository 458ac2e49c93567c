package ai

import (
	"testing"
	"time"

	"hiresight/internal/config"

	"google.golang.org/genai"
)

func TestIndependentStageCircuitBreakers(t *testing.T) {
	// Each pipeline stage gets its own circuit breaker configuration

	skillsConfig := &config.StageAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	experienceConfig := &config.StageAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.7,
		},
	}

	reportConfig := &config.StageAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      4,
			Interval:         90 * time.Second,
			Timeout:          75 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.5,
		},
	}

	skillsCB := NewStageCircuitBreaker(config.StageAnalyzeSkills, skillsConfig, nil)
	experienceCB := NewStageCircuitBreaker(config.StageEvaluateExperience, experienceConfig, nil)
	reportCB := NewStageCircuitBreaker(config.StageGenerateReport, reportConfig, nil)

	t.Run("SkillsCircuitBreaker", func(t *testing.T) {
		stats := skillsCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-analyze_skills"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}

		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("ExperienceCircuitBreaker", func(t *testing.T) {
		stats := experienceCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-evaluate_experience"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	t.Run("ReportCircuitBreaker", func(t *testing.T) {
		stats := reportCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-generate_report"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	t.Run("IndependentInstances", func(t *testing.T) {
		if skillsCB == experienceCB {
			t.Error("Skills and experience circuit breakers should be different instances")
		}
		if skillsCB == reportCB {
			t.Error("Skills and report circuit breakers should be different instances")
		}
		if experienceCB == reportCB {
			t.Error("Experience and report circuit breakers should be different instances")
		}
	})

	t.Run("IndependentHealthStates", func(t *testing.T) {
		if !skillsCB.IsHealthy() {
			t.Error("Skills circuit breaker should be healthy initially")
		}
		if !experienceCB.IsHealthy() {
			t.Error("Experience circuit breaker should be healthy initially")
		}
		if !reportCB.IsHealthy() {
			t.Error("Report circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	customConfig := &config.StageAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewStageCircuitBreaker(config.StageParseJob, customConfig, nil)

	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}

	expectedName := "AI-parse_job"
	if name != expectedName {
		t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	disabledConfig := &config.StageAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	cb := NewStageCircuitBreaker(config.StageAnalyzeEducation, disabledConfig, nil)

	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// A nil breaker still executes the wrapped function directly
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Disabled breaker execution failed: %v", err)
	}
}
