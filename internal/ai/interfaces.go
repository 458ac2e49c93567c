package ai

import (
	"context"

	"hiresight/internal/types"
)

// ReportInput carries everything the report synthesis stage needs: the
// structured inputs, all four analysis results and the weighted overall
// score computed from them.
type ReportInput struct {
	Job          types.JobRequirements
	Resume       types.ResumeData
	Skills       types.SkillsAnalysis
	Experience   types.ExperienceAnalysis
	Education    types.EducationAnalysis
	CulturalFit  types.CulturalFitAnalysis
	OverallScore float64
}

// Provider is the model-facing contract for the seven pipeline stages.
// All methods return token usage information - callers can ignore it if
// not needed.
type Provider interface {
	ParseJob(ctx context.Context, jobDescription string) (types.JobRequirements, *TokenUsage, error)
	ExtractResume(ctx context.Context, resumeText string) (types.ResumeData, *TokenUsage, error)
	AnalyzeSkills(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.SkillsAnalysis, *TokenUsage, error)
	EvaluateExperience(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.ExperienceAnalysis, *TokenUsage, error)
	AnalyzeEducation(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.EducationAnalysis, *TokenUsage, error)
	AnalyzeCulturalFit(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.CulturalFitAnalysis, *TokenUsage, error)
	GenerateReport(ctx context.Context, input ReportInput) (types.ComprehensiveReport, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
