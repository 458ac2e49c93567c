package workflow

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"hiresight/internal/ai"
	"hiresight/internal/config"
	"hiresight/internal/errors"
	"hiresight/internal/types"
)

// fakeStages records invocations and returns canned results. Any stage can
// be made to fail by setting its error field.
type fakeStages struct {
	callOrder []string

	parseJobErr    error
	extractErr     error
	skillsErr      error
	experienceErr  error
	educationErr   error
	culturalErr    error
	reportErr      error
	calls          map[string]int
	reportInput    ai.ReportInput
	skillsScore    float64
	experienceScr  float64
	educationScore float64
	culturalScore  float64
}

func newFakeStages() *fakeStages {
	return &fakeStages{
		calls:          make(map[string]int),
		skillsScore:    8.0,
		experienceScr:  6.0,
		educationScore: 10.0,
		culturalScore:  4.0,
	}
}

func (f *fakeStages) record(stage string) {
	f.calls[stage]++
	f.callOrder = append(f.callOrder, stage)
}

func (f *fakeStages) ParseJob(_ context.Context, _ string) (types.JobRequirements, *ai.TokenUsage, error) {
	f.record("parse_job")
	if f.parseJobErr != nil {
		return types.JobRequirements{}, nil, f.parseJobErr
	}
	return types.JobRequirements{
		RoleTitle:      "Backend Engineer",
		Company:        "Acme",
		RequiredSkills: []string{"Go", "SQL"},
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeStages) ExtractResume(_ context.Context, _ string) (types.ResumeData, *ai.TokenUsage, error) {
	f.record("extract_resume")
	if f.extractErr != nil {
		return types.ResumeData{}, nil, f.extractErr
	}
	return types.ResumeData{
		Name:   "Jordan Doe",
		Skills: []string{"Go", "Kubernetes"},
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeStages) AnalyzeSkills(_ context.Context, _ types.JobRequirements, _ types.ResumeData) (types.SkillsAnalysis, *ai.TokenUsage, error) {
	f.record("analyze_skills")
	if f.skillsErr != nil {
		return types.SkillsAnalysis{}, nil, f.skillsErr
	}
	return types.SkillsAnalysis{
		OverallMatchScore: f.skillsScore,
		MatchedSkills:     []string{"Go"},
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeStages) EvaluateExperience(_ context.Context, _ types.JobRequirements, _ types.ResumeData) (types.ExperienceAnalysis, *ai.TokenUsage, error) {
	f.record("evaluate_experience")
	if f.experienceErr != nil {
		return types.ExperienceAnalysis{}, nil, f.experienceErr
	}
	return types.ExperienceAnalysis{
		OverallExperienceScore: f.experienceScr,
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeStages) AnalyzeEducation(_ context.Context, _ types.JobRequirements, _ types.ResumeData) (types.EducationAnalysis, *ai.TokenUsage, error) {
	f.record("analyze_education")
	if f.educationErr != nil {
		return types.EducationAnalysis{}, nil, f.educationErr
	}
	return types.EducationAnalysis{
		OverallEducationScore: f.educationScore,
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeStages) AnalyzeCulturalFit(_ context.Context, _ types.JobRequirements, _ types.ResumeData) (types.CulturalFitAnalysis, *ai.TokenUsage, error) {
	f.record("analyze_cultural_fit")
	if f.culturalErr != nil {
		return types.CulturalFitAnalysis{}, nil, f.culturalErr
	}
	return types.CulturalFitAnalysis{
		CulturalFitScore: f.culturalScore,
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeStages) GenerateReport(_ context.Context, input ai.ReportInput) (types.ComprehensiveReport, *ai.TokenUsage, error) {
	f.record("generate_report")
	f.reportInput = input
	if f.reportErr != nil {
		return types.ComprehensiveReport{}, nil, f.reportErr
	}
	return types.ComprehensiveReport{
		ExecutiveSummary:      "Solid backend candidate.",
		OverallRecommendation: "Hire",
		HiringConfidence:      0.8,
		KeyStrengths:          []string{"Go expertise"},
	}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func stagesFor(f *fakeStages) Stages {
	return Stages{
		JobParser:           f,
		ResumeExtractor:     f,
		SkillsAnalyzer:      f,
		ExperienceEvaluator: f,
		EducationAnalyzer:   f,
		CulturalFitAnalyzer: f,
		ReportGenerator:     f,
	}
}

func testClock() Clock {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func testEngine(t *testing.T, f *fakeStages) *Engine {
	t.Helper()
	engine, err := NewEngine(stagesFor(f), nil, testClock(), errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestRunExecutesStagesInOrder(t *testing.T) {
	f := newFakeStages()
	engine := testEngine(t, f)

	data, err := engine.Run(context.Background(), "job text", "resume text")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if data == nil {
		t.Fatal("Run returned nil dashboard data")
	}

	expected := []string{
		"parse_job", "extract_resume", "analyze_skills", "evaluate_experience",
		"analyze_education", "analyze_cultural_fit", "generate_report",
	}
	if len(f.callOrder) != len(expected) {
		t.Fatalf("Expected %d stage calls, got %d (%v)", len(expected), len(f.callOrder), f.callOrder)
	}
	for i, stage := range expected {
		if f.callOrder[i] != stage {
			t.Errorf("Stage %d: expected %q, got %q", i, stage, f.callOrder[i])
		}
	}
	for _, stage := range expected {
		if f.calls[stage] != 1 {
			t.Errorf("Stage %q called %d times, expected exactly once", stage, f.calls[stage])
		}
	}
}

func TestRunFailFastOnSkillsError(t *testing.T) {
	f := newFakeStages()
	f.skillsErr = stderrors.New("model unavailable")
	engine := testEngine(t, f)

	data, err := engine.Run(context.Background(), "job text", "resume text")
	if err == nil {
		t.Fatal("Expected error when skills analysis fails")
	}
	if data != nil {
		t.Error("Expected nil dashboard data on failure")
	}

	if !strings.Contains(strings.ToLower(err.Error()), "skills") {
		t.Errorf("Error should identify the skills stage, got: %v", err)
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeStageFailed {
		t.Errorf("Expected code %q, got %q", errors.ErrCodeStageFailed, appErr.Code)
	}

	for _, stage := range []string{"evaluate_experience", "analyze_education", "analyze_cultural_fit", "generate_report"} {
		if f.calls[stage] != 0 {
			t.Errorf("Downstream stage %q invoked %d times after failure", stage, f.calls[stage])
		}
	}
}

func TestOverallScoreFormula(t *testing.T) {
	// 8.0*0.35 + 6.0*0.35 + 10.0*0.15 + 4.0*0.15 = 7.0 exactly
	got := OverallScore(8.0, 6.0, 10.0, 4.0)
	if got != 7.0 {
		t.Errorf("Expected overall score 7.0, got %v", got)
	}
}

func TestRunComputesWeightedScoreBeforeReport(t *testing.T) {
	f := newFakeStages()
	engine := testEngine(t, f)

	data, err := engine.Run(context.Background(), "job text", "resume text")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.reportInput.OverallScore != 7.0 {
		t.Errorf("Report stage received overall score %v, expected 7.0", f.reportInput.OverallScore)
	}
	if data.ScoringOverview.OverallFitnessScore != 7.0 {
		t.Errorf("Dashboard overall score %v, expected 7.0", data.ScoringOverview.OverallFitnessScore)
	}
	if data.ScoringOverview.RankingCategory != "Good Fit" {
		t.Errorf("Expected ranking 'Good Fit', got %q", data.ScoringOverview.RankingCategory)
	}
	if data.CandidateSummary.AnalysisDate != "2025-06-01T12:00:00Z" {
		t.Errorf("Analysis date should come from the injected clock, got %q", data.CandidateSummary.AnalysisDate)
	}
}

func TestRunCanceledContext(t *testing.T) {
	f := newFakeStages()
	engine := testEngine(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, "job text", "resume text")
	if err == nil {
		t.Fatal("Expected error for canceled context")
	}
	if len(f.callOrder) != 0 {
		t.Errorf("No stage should run after cancellation, got %v", f.callOrder)
	}
}

func TestNewEngineRequiresAllStages(t *testing.T) {
	f := newFakeStages()
	stages := stagesFor(f)
	stages.EducationAnalyzer = nil

	_, err := NewEngine(stages, nil, nil, errors.NewLogger(slog.LevelError))
	if err == nil {
		t.Fatal("Expected error for missing stage collaborator")
	}
	if !strings.Contains(err.Error(), "education analyzer") {
		t.Errorf("Error should name the missing collaborator, got: %v", err)
	}
}

func TestDescribeListsStagesInOrder(t *testing.T) {
	f := newFakeStages()
	engine := testEngine(t, f)

	graph := engine.Describe()
	if !strings.HasPrefix(graph, "flowchart LR") {
		t.Errorf("Describe should emit a Mermaid flowchart, got: %q", graph)
	}

	ordered := []string{
		"parse_job --> extract_resume",
		"extract_resume --> analyze_skills",
		"analyze_skills --> evaluate_experience",
		"evaluate_experience --> analyze_education",
		"analyze_education --> analyze_cultural_fit",
		"analyze_cultural_fit --> generate_report",
	}
	for _, edge := range ordered {
		if !strings.Contains(graph, edge) {
			t.Errorf("Describe missing edge %q in:\n%s", edge, graph)
		}
	}
}

type observerEvent struct {
	stage  string
	tokens int64
	err    error
}

type recordingObserver struct {
	events []observerEvent
}

func (r *recordingObserver) StageCompleted(_ context.Context, stage string, _ time.Duration, tokensUsed int64, err error) {
	r.events = append(r.events, observerEvent{stage: stage, tokens: tokensUsed, err: err})
}

func TestRunNotifiesObserver(t *testing.T) {
	f := newFakeStages()
	engine := testEngine(t, f)
	obs := &recordingObserver{}
	engine.SetObserver(obs)

	if _, err := engine.Run(context.Background(), "job", "resume"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(obs.events) != 7 {
		t.Fatalf("Expected 7 observer events, got %d", len(obs.events))
	}
	for i, ev := range obs.events {
		if ev.stage != config.StageNames[i] {
			t.Errorf("Event %d stage = %q, want %q", i, ev.stage, config.StageNames[i])
		}
		if ev.tokens != 100 {
			t.Errorf("Event %d tokens = %d, want 100", i, ev.tokens)
		}
		if ev.err != nil {
			t.Errorf("Event %d unexpected error: %v", i, ev.err)
		}
	}
}

func TestRunNotifiesObserverOnFailure(t *testing.T) {
	f := newFakeStages()
	f.skillsErr = stderrors.New("quota exhausted")
	engine := testEngine(t, f)
	obs := &recordingObserver{}
	engine.SetObserver(obs)

	if _, err := engine.Run(context.Background(), "job", "resume"); err == nil {
		t.Fatal("Expected run to fail")
	}

	if len(obs.events) != 3 {
		t.Fatalf("Expected 3 observer events, got %d", len(obs.events))
	}
	last := obs.events[2]
	if last.stage != "analyze_skills" {
		t.Errorf("Last event stage = %q, want analyze_skills", last.stage)
	}
	if last.err == nil {
		t.Error("Failing stage event should carry the error")
	}
}
