package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"hiresight/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "DashboardData", &DashboardTextFormatter{})
	registry.RegisterFormatter("markdown", "DashboardData", &DashboardMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.DashboardData, *types.DashboardData:
		return "DashboardData"
	default:
		return "any"
	}
}

func asDashboardData(data any) (types.DashboardData, bool) {
	switch v := data.(type) {
	case types.DashboardData:
		return v, true
	case *types.DashboardData:
		if v != nil {
			return *v, true
		}
	}
	return types.DashboardData{}, false
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// DashboardTextFormatter handles text formatting for analysis dashboards
type DashboardTextFormatter struct{}

func (dtf *DashboardTextFormatter) Format(data any) (string, error) {
	result, ok := asDashboardData(data)
	if !ok {
		return "", fmt.Errorf("expected DashboardData, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Candidate: %s\n", result.CandidateSummary.Name))
	if result.CandidateSummary.Email != "" {
		output.WriteString(fmt.Sprintf("Email: %s\n", result.CandidateSummary.Email))
	}
	output.WriteString(fmt.Sprintf("Position: %s at %s\n", result.CandidateSummary.JobTitle, result.CandidateSummary.Company))
	output.WriteString(fmt.Sprintf("Analyzed: %s\n\n", result.CandidateSummary.AnalysisDate))

	output.WriteString("=== SCORING ===\n")
	output.WriteString(fmt.Sprintf("Overall Fitness Score: %.1f/10\n", result.ScoringOverview.OverallFitnessScore))
	output.WriteString(fmt.Sprintf("Ranking: %s\n", result.ScoringOverview.RankingCategory))
	output.WriteString(fmt.Sprintf("Recommendation: %s\n", result.ScoringOverview.Recommendation))
	output.WriteString(fmt.Sprintf("Confidence: %.0f%%\n\n", result.ScoringOverview.ConfidenceLevel*100))

	output.WriteString("Score Breakdown:\n")
	for _, component := range []string{"Skills Match", "Experience", "Education", "Cultural Fit"} {
		if score, ok := result.ScoringOverview.ScoreBreakdown[component]; ok {
			output.WriteString(fmt.Sprintf("- %s: %.1f/10\n", component, score))
		}
	}
	output.WriteString("\n")

	output.WriteString("=== METRICS ===\n")
	output.WriteString(fmt.Sprintf("Skills Match: %.1f%%\n", result.DetailedMetrics.SkillsMatchPercentage))
	output.WriteString(fmt.Sprintf("Relevant Experience: %.1f years\n\n", result.DetailedMetrics.YearsRelevantExperience))

	if len(result.KeyInsights.TopStrengths) > 0 {
		output.WriteString("=== TOP STRENGTHS ===\n")
		for _, strength := range result.KeyInsights.TopStrengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.KeyInsights.CriticalGaps) > 0 {
		output.WriteString("=== CRITICAL GAPS ===\n")
		for _, gap := range result.KeyInsights.CriticalGaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		output.WriteString("\n")
	}

	if len(result.KeyInsights.RiskFactors) > 0 {
		output.WriteString("=== RISK FACTORS ===\n")
		for _, risk := range result.KeyInsights.RiskFactors {
			output.WriteString(fmt.Sprintf("- [%s] %s: %s\n", risk.Severity, risk.Type, risk.Description))
		}
		output.WriteString("\n")
	}

	if len(result.InterviewPreparation.FocusAreas) > 0 {
		output.WriteString("=== INTERVIEW FOCUS AREAS ===\n")
		for _, area := range result.InterviewPreparation.FocusAreas {
			output.WriteString(fmt.Sprintf("- %s\n", area))
		}
		output.WriteString("\n")
	}

	if len(result.InterviewPreparation.SuggestedQuestions) > 0 {
		output.WriteString("=== SUGGESTED QUESTIONS ===\n")
		for i, q := range result.InterviewPreparation.SuggestedQuestions {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, q.Category, q.Question))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== RECOMMENDATIONS ===\n")
	output.WriteString(fmt.Sprintf("Hiring Decision: %s\n", result.Recommendations.HiringDecision))
	if result.Recommendations.SalaryRange != "" {
		output.WriteString(fmt.Sprintf("Salary Range: %s\n", result.Recommendations.SalaryRange))
	}
	if len(result.Recommendations.DevelopmentPlan) > 0 {
		output.WriteString("Development Plan:\n")
		for _, item := range result.Recommendations.DevelopmentPlan {
			output.WriteString(fmt.Sprintf("- [%s] %s: %s (%s)\n", item.Priority, item.Area, item.Action, item.Timeline))
		}
	}
	output.WriteString("\n")

	output.WriteString("=== EXECUTIVE SUMMARY ===\n")
	output.WriteString(result.ExecutiveSummary)
	output.WriteString("\n")

	return output.String(), nil
}

func (dtf *DashboardTextFormatter) SupportedType() string {
	return "DashboardData"
}

// DashboardMarkdownFormatter handles markdown formatting for analysis dashboards
type DashboardMarkdownFormatter struct{}

func (dmf *DashboardMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asDashboardData(data)
	if !ok {
		return "", fmt.Errorf("expected DashboardData, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Candidate Analysis: %s\n\n", result.CandidateSummary.Name))
	output.WriteString(fmt.Sprintf("**Position:** %s at %s\n\n", result.CandidateSummary.JobTitle, result.CandidateSummary.Company))
	output.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", result.CandidateSummary.AnalysisDate))

	output.WriteString("## Scoring\n\n")
	output.WriteString(fmt.Sprintf("**Overall Fitness Score:** %.1f/10\n\n", result.ScoringOverview.OverallFitnessScore))
	output.WriteString(fmt.Sprintf("**Ranking:** %s\n\n", result.ScoringOverview.RankingCategory))
	output.WriteString(fmt.Sprintf("**Recommendation:** %s\n\n", result.ScoringOverview.Recommendation))
	output.WriteString(fmt.Sprintf("**Confidence:** %.0f%%\n\n", result.ScoringOverview.ConfidenceLevel*100))

	output.WriteString("### Score Breakdown\n\n")
	for _, component := range []string{"Skills Match", "Experience", "Education", "Cultural Fit"} {
		if score, ok := result.ScoringOverview.ScoreBreakdown[component]; ok {
			output.WriteString(fmt.Sprintf("- **%s:** %.1f/10\n", component, score))
		}
	}
	output.WriteString("\n")

	output.WriteString("## Metrics\n\n")
	output.WriteString(fmt.Sprintf("- **Skills Match:** %.1f%%\n", result.DetailedMetrics.SkillsMatchPercentage))
	output.WriteString(fmt.Sprintf("- **Relevant Experience:** %.1f years\n\n", result.DetailedMetrics.YearsRelevantExperience))

	if len(result.KeyInsights.TopStrengths) > 0 {
		output.WriteString("## Top Strengths\n\n")
		for _, strength := range result.KeyInsights.TopStrengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.KeyInsights.CriticalGaps) > 0 {
		output.WriteString("## Critical Gaps\n\n")
		for _, gap := range result.KeyInsights.CriticalGaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		output.WriteString("\n")
	}

	if len(result.KeyInsights.RiskFactors) > 0 {
		output.WriteString("## Risk Factors\n\n")
		for _, risk := range result.KeyInsights.RiskFactors {
			output.WriteString(fmt.Sprintf("- **[%s] %s:** %s\n", risk.Severity, risk.Type, risk.Description))
		}
		output.WriteString("\n")
	}

	if len(result.InterviewPreparation.FocusAreas) > 0 {
		output.WriteString("## Interview Focus Areas\n\n")
		for _, area := range result.InterviewPreparation.FocusAreas {
			output.WriteString(fmt.Sprintf("- %s\n", area))
		}
		output.WriteString("\n")
	}

	if len(result.InterviewPreparation.SuggestedQuestions) > 0 {
		output.WriteString("## Suggested Questions\n\n")
		for i, q := range result.InterviewPreparation.SuggestedQuestions {
			output.WriteString(fmt.Sprintf("%d. **[%s]** %s\n", i+1, q.Category, q.Question))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Recommendations\n\n")
	output.WriteString(fmt.Sprintf("**Hiring Decision:** %s\n\n", result.Recommendations.HiringDecision))
	if result.Recommendations.SalaryRange != "" {
		output.WriteString(fmt.Sprintf("**Salary Range:** %s\n\n", result.Recommendations.SalaryRange))
	}
	if len(result.Recommendations.DevelopmentPlan) > 0 {
		output.WriteString("### Development Plan\n\n")
		for _, item := range result.Recommendations.DevelopmentPlan {
			output.WriteString(fmt.Sprintf("- **[%s] %s:** %s (%s)\n", item.Priority, item.Area, item.Action, item.Timeline))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Executive Summary\n\n")
	output.WriteString(result.ExecutiveSummary)
	output.WriteString("\n")

	return output.String(), nil
}

func (dmf *DashboardMarkdownFormatter) SupportedType() string {
	return "DashboardData"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
