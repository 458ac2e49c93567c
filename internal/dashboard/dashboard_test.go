package dashboard

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"hiresight/internal/errors"
	"hiresight/internal/types"
)

func sampleInput() Input {
	return Input{
		Job: &types.JobRequirements{
			RoleTitle:      "Platform Engineer",
			Company:        "Acme",
			RequiredSkills: []string{"Go", "Kubernetes", "PostgreSQL"},
		},
		Resume: &types.ResumeData{
			Name:   "Jordan Doe",
			Email:  "jordan@example.com",
			Skills: []string{"Go", "Docker"},
		},
		Skills: &types.SkillsAnalysis{
			OverallMatchScore:     7.25,
			MatchedSkills:         []string{"Go", "Docker"},
			MissingCriticalSkills: []string{"Kubernetes", "PostgreSQL"},
			TransferableSkills:    []string{"Docker Swarm"},
		},
		Experience: &types.ExperienceAnalysis{
			OverallExperienceScore:    6.84,
			RelevantExperienceYears:   4.5,
			IndustryAlignmentScore:    7.0,
			RoleProgressionScore:      6.5,
			LeadershipExperienceScore: 5.0,
			ExperienceGaps:            []string{"No on-call ownership", "No large-scale systems"},
		},
		Education: &types.EducationAnalysis{
			OverallEducationScore: 8.0,
			FieldOfStudyRelevance: 8.5,
			EducationLevelMatch:   true,
			EducationGaps:         []string{"No formal CS degree"},
		},
		CulturalFit: &types.CulturalFitAnalysis{
			CulturalFitScore:  7.5,
			AdaptabilityScore: 8.0,
		},
		Report: &types.ComprehensiveReport{
			ExecutiveSummary:      "Promising candidate.",
			OverallRecommendation: "Hire",
			HiringConfidence:      0.75,
			KeyStrengths:          []string{"Go depth", "Ownership"},
			InterviewQuestions: []types.InterviewQuestion{
				{Category: "Technical", Question: "q1", DifficultyLevel: "Hard"},
				{Category: "Behavioral", Question: "q2", DifficultyLevel: "Medium"},
				{Category: "Technical", Question: "q3", DifficultyLevel: "Medium"},
			},
		},
		OverallScore: 7.1,
		GeneratedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRankingBoundaries(t *testing.T) {
	tests := []struct {
		score          float64
		category       string
		recommendation string
	}{
		{8.5, "Excellent Fit", "Strong candidate - Proceed to final interview"},
		{8.4999, "Good Fit", "Good candidate - Proceed to technical interview"},
		{7.0, "Good Fit", "Good candidate - Proceed to technical interview"},
		{6.9999, "Fair Fit", "Potential candidate - Requires further evaluation"},
		{5.5, "Fair Fit", "Potential candidate - Requires further evaluation"},
		{5.4999, "Poor Fit", "Not recommended for this position"},
		{0.0, "Poor Fit", "Not recommended for this position"},
		{10.0, "Excellent Fit", "Strong candidate - Proceed to final interview"},
	}

	for _, tt := range tests {
		category, recommendation := rankingInfo(tt.score)
		if category != tt.category {
			t.Errorf("Score %v: expected category %q, got %q", tt.score, tt.category, category)
		}
		if recommendation != tt.recommendation {
			t.Errorf("Score %v: expected recommendation %q, got %q", tt.score, tt.recommendation, recommendation)
		}
	}
}

func TestSkillsMatchPercentage(t *testing.T) {
	tests := []struct {
		name     string
		matched  []string
		missing  []string
		expected float64
	}{
		{"two thirds", []string{"a", "b"}, []string{"c"}, 66.7},
		{"all matched", []string{"a", "b"}, nil, 100.0},
		{"none matched", nil, []string{"a"}, 0.0},
		{"zero denominator", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skillsMatchPercentage(&types.SkillsAnalysis{
				MatchedSkills:         tt.matched,
				MissingCriticalSkills: tt.missing,
			})
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCriticalGapsComposition(t *testing.T) {
	skills := &types.SkillsAnalysis{
		MissingCriticalSkills: []string{"K8s", "Terraform", "AWS"},
	}
	experience := &types.ExperienceAnalysis{
		ExperienceGaps: []string{"exp gap 1", "exp gap 2", "exp gap 3"},
	}
	education := &types.EducationAnalysis{
		EducationGaps: []string{"edu gap 1", "edu gap 2"},
	}

	got := criticalGaps(skills, experience, education)
	want := []string{
		"Missing skill: K8s",
		"Missing skill: Terraform",
		"exp gap 1",
		"exp gap 2",
		"edu gap 1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestInterviewFocusAreasStableTieBreak(t *testing.T) {
	questions := []types.InterviewQuestion{
		{Category: "Technical"},
		{Category: "Behavioral"},
		{Category: "Technical"},
		{Category: "Behavioral"},
		{Category: "Technical"},
		{Category: "Behavioral"},
		{Category: "Cultural"},
	}

	got := interviewFocusAreas(questions)
	want := []string{"Technical", "Behavioral", "Cultural"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestInterviewFocusAreasTopFour(t *testing.T) {
	questions := []types.InterviewQuestion{
		{Category: "A"}, {Category: "A"},
		{Category: "B"}, {Category: "B"}, {Category: "B"},
		{Category: "C"},
		{Category: "D"}, {Category: "D"},
		{Category: "E"},
	}

	got := interviewFocusAreas(questions)
	if len(got) != 4 {
		t.Fatalf("Expected 4 focus areas, got %d: %v", len(got), got)
	}
	if got[0] != "B" {
		t.Errorf("Most frequent category should lead, got %v", got)
	}
}

func TestAssessmentPriorities(t *testing.T) {
	tests := []struct {
		name         string
		overallScore float64
		missing      int
		want         []string
	}{
		{
			name:         "low score",
			overallScore: 6.0,
			missing:      1,
			want:         []string{"Comprehensive technical assessment required"},
		},
		{
			name:         "low score with many gaps",
			overallScore: 6.0,
			missing:      3,
			want: []string{
				"Comprehensive technical assessment required",
				"Focus on skill gap evaluation",
			},
		},
		{
			name:         "high score",
			overallScore: 8.5,
			missing:      0,
			want: []string{
				"Cultural fit and team dynamics assessment",
				"Leadership potential evaluation",
			},
		},
		{
			name:         "mid score no gaps",
			overallScore: 7.5,
			missing:      0,
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := &types.SkillsAnalysis{
				MissingCriticalSkills: make([]string, tt.missing),
			}
			got := assessmentPriorities(tt.overallScore, skills)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestProjectChartsFixedSeries(t *testing.T) {
	data, err := Project(sampleInput())
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	radar := data.ChartsData.RadarChart
	wantCategories := []string{"Technical Skills", "Experience", "Education", "Cultural Fit", "Leadership"}
	if !reflect.DeepEqual(radar.Categories, wantCategories) {
		t.Errorf("Radar categories: expected %v, got %v", wantCategories, radar.Categories)
	}
	wantScores := []float64{7.3, 6.8, 8.0, 7.5, 5.0}
	if !reflect.DeepEqual(radar.Scores, wantScores) {
		t.Errorf("Radar scores: expected %v, got %v", wantScores, radar.Scores)
	}

	trend := data.ChartsData.ScoreTrend
	wantLabels := []string{"Skills", "Experience", "Education", "Cultural Fit"}
	if !reflect.DeepEqual(trend.Labels, wantLabels) {
		t.Errorf("Trend labels: expected %v, got %v", wantLabels, trend.Labels)
	}
}

func TestProjectRoundsToOneDecimal(t *testing.T) {
	data, err := Project(sampleInput())
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if data.DetailedMetrics.ExperienceRelevance != 6.8 {
		t.Errorf("Expected experience relevance 6.8, got %v", data.DetailedMetrics.ExperienceRelevance)
	}
	if data.ScoringOverview.ScoreBreakdown["Skills Match"] != 7.3 {
		t.Errorf("Expected skills breakdown 7.3, got %v", data.ScoringOverview.ScoreBreakdown["Skills Match"])
	}
}

func TestProjectIdempotent(t *testing.T) {
	in := sampleInput()

	first, err := Project(in)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	second, err := Project(in)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if string(firstJSON) != string(secondJSON) {
		t.Error("Projection is not byte-identical across identical inputs")
	}
}

func TestProjectMissingInputIsContractViolation(t *testing.T) {
	in := sampleInput()
	in.Education = nil

	_, err := Project(in)
	if err == nil {
		t.Fatal("Expected error for missing education analysis")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeProjection {
		t.Errorf("Expected code %q, got %q", errors.ErrCodeProjection, appErr.Code)
	}
}

func TestProjectUnknownCandidateFallback(t *testing.T) {
	in := sampleInput()
	in.Resume = &types.ResumeData{}

	data, err := Project(in)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if data.CandidateSummary.Name != "Unknown Candidate" {
		t.Errorf("Expected fallback candidate name, got %q", data.CandidateSummary.Name)
	}
}
