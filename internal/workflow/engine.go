package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hiresight/internal/ai"
	"hiresight/internal/config"
	"hiresight/internal/dashboard"
	"hiresight/internal/errors"
	"hiresight/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Weighted overall score components. Fixed policy constants, weights sum
// to 1.0 exactly.
const (
	WeightSkills     = 0.35
	WeightExperience = 0.35
	WeightEducation  = 0.15
	WeightCultural   = 0.15
)

// Stage collaborator contracts. The AI provider satisfies all of them; tests
// substitute fakes per stage.
type (
	JobParser interface {
		ParseJob(ctx context.Context, jobDescription string) (types.JobRequirements, *ai.TokenUsage, error)
	}
	ResumeExtractor interface {
		ExtractResume(ctx context.Context, resumeText string) (types.ResumeData, *ai.TokenUsage, error)
	}
	SkillsAnalyzer interface {
		AnalyzeSkills(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.SkillsAnalysis, *ai.TokenUsage, error)
	}
	ExperienceEvaluator interface {
		EvaluateExperience(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.ExperienceAnalysis, *ai.TokenUsage, error)
	}
	EducationAnalyzer interface {
		AnalyzeEducation(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.EducationAnalysis, *ai.TokenUsage, error)
	}
	CulturalFitAnalyzer interface {
		AnalyzeCulturalFit(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.CulturalFitAnalysis, *ai.TokenUsage, error)
	}
	ReportGenerator interface {
		GenerateReport(ctx context.Context, input ai.ReportInput) (types.ComprehensiveReport, *ai.TokenUsage, error)
	}
)

// Projector turns the completed pipeline state into the presentation
// document. Must be a pure function of its input.
type Projector func(in dashboard.Input) (*types.DashboardData, error)

// StageObserver receives completion events for metrics recording. Optional.
type StageObserver interface {
	StageCompleted(ctx context.Context, stage string, duration time.Duration, tokensUsed int64, err error)
}

// Clock supplies the analysis timestamp. Injected so projections are
// reproducible in tests.
type Clock func() time.Time

// Stages bundles the seven stage collaborators for engine construction.
type Stages struct {
	JobParser           JobParser
	ResumeExtractor     ResumeExtractor
	SkillsAnalyzer      SkillsAnalyzer
	ExperienceEvaluator ExperienceEvaluator
	EducationAnalyzer   EducationAnalyzer
	CulturalFitAnalyzer CulturalFitAnalyzer
	ReportGenerator     ReportGenerator
}

// StagesFromProvider wires every stage to a single AI provider.
func StagesFromProvider(p ai.Provider) Stages {
	return Stages{
		JobParser:           p,
		ResumeExtractor:     p,
		SkillsAnalyzer:      p,
		ExperienceEvaluator: p,
		EducationAnalyzer:   p,
		CulturalFitAnalyzer: p,
		ReportGenerator:     p,
	}
}

// State is the pipeline's working state. Each stage receives the state
// built so far by value and returns a new one; results are never mutated
// after their producing stage writes them.
type State struct {
	JobDescription string
	ResumeText     string

	Job          *types.JobRequirements
	Resume       *types.ResumeData
	Skills       *types.SkillsAnalysis
	Experience   *types.ExperienceAnalysis
	Education    *types.EducationAnalysis
	CulturalFit  *types.CulturalFitAnalysis
	Report       *types.ComprehensiveReport
	OverallScore float64

	TokensUsed int64
}

// Engine runs the seven analysis stages strictly in order and projects the
// final state into a dashboard document. All collaborators are injected at
// construction.
type Engine struct {
	stages    Stages
	projector Projector
	clock     Clock
	logger    *errors.Logger
	observer  StageObserver
}

// SetObserver attaches a metrics observer. Must be called before Run.
func (e *Engine) SetObserver(obs StageObserver) {
	e.observer = obs
}

// NewEngine validates and assembles an engine. The projector defaults to
// dashboard.Project and the clock to time.Now when nil.
func NewEngine(stages Stages, projector Projector, clock Clock, logger *errors.Logger) (*Engine, error) {
	missing := ""
	switch {
	case stages.JobParser == nil:
		missing = "job parser"
	case stages.ResumeExtractor == nil:
		missing = "resume extractor"
	case stages.SkillsAnalyzer == nil:
		missing = "skills analyzer"
	case stages.ExperienceEvaluator == nil:
		missing = "experience evaluator"
	case stages.EducationAnalyzer == nil:
		missing = "education analyzer"
	case stages.CulturalFitAnalyzer == nil:
		missing = "cultural fit analyzer"
	case stages.ReportGenerator == nil:
		missing = "report generator"
	}
	if missing != "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Workflow engine missing stage collaborator: "+missing, nil)
	}

	if projector == nil {
		projector = dashboard.Project
	}
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		stages:    stages,
		projector: projector,
		clock:     clock,
		logger:    logger,
	}, nil
}

// stageHumanNames give each stage the name used in wrapped errors.
var stageHumanNames = map[string]string{
	config.StageParseJob:           "Job parsing",
	config.StageExtractResume:      "Resume extraction",
	config.StageAnalyzeSkills:      "Skills analysis",
	config.StageEvaluateExperience: "Experience evaluation",
	config.StageAnalyzeEducation:   "Education analysis",
	config.StageAnalyzeCulturalFit: "Cultural fit analysis",
	config.StageGenerateReport:     "Report generation",
}

type stageStep struct {
	name string
	run  func(ctx context.Context, s State) (State, error)
}

// Run executes the full pipeline for one analysis request. Fail-fast: the
// first stage error halts the run and no downstream stage is invoked.
func (e *Engine) Run(ctx context.Context, jobDescription, resumeText string) (*types.DashboardData, error) {
	tracer := otel.Tracer("hiresight.workflow")
	ctx, span := tracer.Start(ctx, "workflow.run")
	defer span.End()

	state := State{
		JobDescription: jobDescription,
		ResumeText:     resumeText,
	}

	steps := []stageStep{
		{config.StageParseJob, e.parseJob},
		{config.StageExtractResume, e.extractResume},
		{config.StageAnalyzeSkills, e.analyzeSkills},
		{config.StageEvaluateExperience, e.evaluateExperience},
		{config.StageAnalyzeEducation, e.analyzeEducation},
		{config.StageAnalyzeCulturalFit, e.analyzeCulturalFit},
		{config.StageGenerateReport, e.generateReport},
	}

	start := e.clock()
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, errors.NewWorkflowError(errors.ErrCodeStageFailed,
				stageHumanNames[step.name]+" error: analysis canceled", err)
		}

		stageStart := time.Now()
		next, err := step.run(ctx, state)
		if e.observer != nil {
			e.observer.StageCompleted(ctx, step.name, time.Since(stageStart),
				next.TokensUsed-state.TokensUsed, err)
		}
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(
				attribute.String("workflow.failed_stage", step.name),
				attribute.Bool("success", false),
			)
			e.logger.LogError(err, "Workflow stage failed",
				"stage", step.name,
				"duration", time.Since(stageStart).String())
			return nil, errors.NewWorkflowError(errors.ErrCodeStageFailed,
				fmt.Sprintf("%s error", stageHumanNames[step.name]), err)
		}

		e.logger.Debug("Workflow stage completed",
			"stage", step.name,
			"duration", time.Since(stageStart).String())
		state = next
	}

	data, err := e.projector(dashboard.Input{
		Job:          state.Job,
		Resume:       state.Resume,
		Skills:       state.Skills,
		Experience:   state.Experience,
		Education:    state.Education,
		CulturalFit:  state.CulturalFit,
		Report:       state.Report,
		OverallScore: state.OverallScore,
		GeneratedAt:  e.clock(),
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("workflow.overall_score", state.OverallScore),
		attribute.Int64("workflow.tokens_used", state.TokensUsed),
		attribute.Bool("success", true),
	)
	e.logger.Info("Analysis pipeline completed",
		"candidate", data.CandidateSummary.Name,
		"overall_score", state.OverallScore,
		"tokens_used", state.TokensUsed,
		"duration", e.clock().Sub(start).String())

	return data, nil
}

// Describe returns the pipeline's stage graph in Mermaid flowchart syntax.
func (e *Engine) Describe() string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")
	for i := 0; i < len(config.StageNames)-1; i++ {
		fmt.Fprintf(&b, "    %s --> %s\n", config.StageNames[i], config.StageNames[i+1])
	}
	return b.String()
}

func (e *Engine) parseJob(ctx context.Context, s State) (State, error) {
	job, usage, err := e.stages.JobParser.ParseJob(ctx, s.JobDescription)
	if err != nil {
		return s, err
	}
	s.Job = &job
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

func (e *Engine) extractResume(ctx context.Context, s State) (State, error) {
	resume, usage, err := e.stages.ResumeExtractor.ExtractResume(ctx, s.ResumeText)
	if err != nil {
		return s, err
	}
	s.Resume = &resume
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

func (e *Engine) analyzeSkills(ctx context.Context, s State) (State, error) {
	skills, usage, err := e.stages.SkillsAnalyzer.AnalyzeSkills(ctx, *s.Job, *s.Resume)
	if err != nil {
		return s, err
	}
	s.Skills = &skills
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

func (e *Engine) evaluateExperience(ctx context.Context, s State) (State, error) {
	experience, usage, err := e.stages.ExperienceEvaluator.EvaluateExperience(ctx, *s.Job, *s.Resume)
	if err != nil {
		return s, err
	}
	s.Experience = &experience
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

func (e *Engine) analyzeEducation(ctx context.Context, s State) (State, error) {
	education, usage, err := e.stages.EducationAnalyzer.AnalyzeEducation(ctx, *s.Job, *s.Resume)
	if err != nil {
		return s, err
	}
	s.Education = &education
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

func (e *Engine) analyzeCulturalFit(ctx context.Context, s State) (State, error) {
	cultural, usage, err := e.stages.CulturalFitAnalyzer.AnalyzeCulturalFit(ctx, *s.Job, *s.Resume)
	if err != nil {
		return s, err
	}
	s.CulturalFit = &cultural
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

// generateReport computes the weighted overall score, then runs the report
// synthesis stage with the complete upstream state.
func (e *Engine) generateReport(ctx context.Context, s State) (State, error) {
	s.OverallScore = OverallScore(s.Skills.OverallMatchScore,
		s.Experience.OverallExperienceScore,
		s.Education.OverallEducationScore,
		s.CulturalFit.CulturalFitScore)

	report, usage, err := e.stages.ReportGenerator.GenerateReport(ctx, ai.ReportInput{
		Job:          *s.Job,
		Resume:       *s.Resume,
		Skills:       *s.Skills,
		Experience:   *s.Experience,
		Education:    *s.Education,
		CulturalFit:  *s.CulturalFit,
		OverallScore: s.OverallScore,
	})
	if err != nil {
		return s, err
	}
	s.Report = &report
	s.TokensUsed += totalTokens(usage)
	return s, nil
}

// OverallScore applies the fixed component weights.
func OverallScore(skills, experience, education, cultural float64) float64 {
	return skills*WeightSkills +
		experience*WeightExperience +
		education*WeightEducation +
		cultural*WeightCultural
}

func totalTokens(usage *ai.TokenUsage) int64 {
	if usage == nil {
		return 0
	}
	return usage.TotalTokens
}
