package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"hiresight/internal/types"
)

func sampleDashboard() types.DashboardData {
	return types.DashboardData{
		CandidateSummary: types.CandidateSummary{
			Name:         "Jane Smith",
			Email:        "jane@example.com",
			AnalysisDate: "2025-06-01T12:00:00Z",
			JobTitle:     "Platform Engineer",
			Company:      "Example Corp",
		},
		ScoringOverview: types.ScoringOverview{
			OverallFitnessScore: 7.8,
			RankingCategory:     "Good Fit",
			Recommendation:      "Proceed to interview",
			ConfidenceLevel:     0.8,
			ScoreBreakdown: map[string]float64{
				"Skills Match": 8.0,
				"Experience":   7.5,
				"Education":    7.0,
				"Cultural Fit": 8.5,
			},
		},
		DetailedMetrics: types.DetailedMetrics{
			SkillsMatchPercentage:   80.0,
			YearsRelevantExperience: 5.5,
		},
		KeyInsights: types.KeyInsights{
			TopStrengths: []string{"Strong Go experience", "Kubernetes operations"},
			CriticalGaps: []string{"No Terraform exposure"},
			RiskFactors: []types.RiskSummary{
				{Type: "retention", Severity: "low", Description: "Short tenure at last role"},
			},
		},
		InterviewPreparation: types.InterviewPreparation{
			FocusAreas: []string{"Infrastructure as code"},
			SuggestedQuestions: []types.SuggestedQuestion{
				{Category: "technical", Question: "Describe a production incident you resolved."},
			},
		},
		Recommendations: types.Recommendations{
			HiringDecision: "hire",
			SalaryRange:    "$140k-$160k",
			DevelopmentPlan: []types.DevelopmentPlanItem{
				{Area: "IaC", Priority: "medium", Action: "Terraform onboarding", Timeline: "first quarter"},
			},
		},
		ExecutiveSummary: "Strong platform engineering candidate with minor tooling gaps.",
	}
}

func TestTextFormatter(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleDashboard(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"=== CANDIDATE ANALYSIS ===",
		"Candidate: Jane Smith",
		"Overall Fitness Score: 7.8/10",
		"- Skills Match: 8.0/10",
		"- [low] retention: Short tenure at last role",
		"Hiring Decision: hire",
		"=== EXECUTIVE SUMMARY ===",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestMarkdownFormatter(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleDashboard(), "markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"# Candidate Analysis: Jane Smith",
		"## Scoring",
		"**Overall Fitness Score:** 7.8/10",
		"### Score Breakdown",
		"## Recommendations",
		"## Executive Summary",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleDashboard(), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded types.DashboardData
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.CandidateSummary.Name != "Jane Smith" {
		t.Errorf("expected candidate name to survive encoding, got %q", decoded.CandidateSummary.Name)
	}
}

func TestFormatPointerData(t *testing.T) {
	data := sampleDashboard()
	output, err := GlobalRegistry.Format(&data, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Candidate: Jane Smith") {
		t.Error("pointer input should format like value input")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleDashboard(), "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONFallbackForUnknownType(t *testing.T) {
	output, err := GlobalRegistry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, `"key": "value"`) {
		t.Errorf("expected JSON output, got %q", output)
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := GlobalRegistry.GetSupportedFormats()
	seen := make(map[string]bool, len(formats))
	for _, format := range formats {
		seen[format] = true
	}
	for _, want := range []string{"json", "text", "markdown"} {
		if !seen[want] {
			t.Errorf("expected %q in supported formats, got %v", want, formats)
		}
	}
}
