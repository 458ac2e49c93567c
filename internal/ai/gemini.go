package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"hiresight/internal/config"
	"hiresight/internal/errors"
	"hiresight/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// stageRuntime bundles everything one pipeline stage needs at call time.
type stageRuntime struct {
	cfg     config.StageAIConfig
	breaker *StageCircuitBreaker
}

// GeminiProvider implements Provider on Google Gemini. One client is shared
// across stages; each stage carries its own configuration and circuit
// breaker so timeouts, temperatures and failure isolation stay independent.
type GeminiProvider struct {
	client            *genai.Client
	stages            map[string]*stageRuntime
	modelBreaker      *ModelCircuitBreaker
	model             string
	modelCheckTimeout time.Duration
	logger            *errors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a provider with per-stage runtimes resolved from
// the configuration. The API key of the first pipeline stage authenticates
// the shared client.
func NewGeminiProvider(cfg *config.Config, logger *errors.Logger) (*GeminiProvider, error) {
	stages := make(map[string]*stageRuntime, len(config.StageNames))
	for _, stage := range config.StageNames {
		stageCfg, err := cfg.StageConfig(stage)
		if err != nil {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				"Failed to resolve stage configuration", err)
		}
		stages[stage] = &stageRuntime{
			cfg:     stageCfg,
			breaker: NewStageCircuitBreaker(stage, &stageCfg, logger),
		}
	}

	first := stages[config.StageParseJob]
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: first.cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	modelCheckTimeout := cfg.Observability.HealthCheck.AIModelCheckTimeout
	if modelCheckTimeout <= 0 {
		modelCheckTimeout = 10 * time.Second
	}

	return &GeminiProvider{
		client:            client,
		stages:            stages,
		modelBreaker:      NewModelCircuitBreaker(&first.cfg, logger),
		model:             first.cfg.Model,
		modelCheckTimeout: modelCheckTimeout,
		logger:            logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, g.modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.model,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.model,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes a stage call with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, rt *stageRuntime, stage string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *rt.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI stage",
				"stage", stage,
				"attempt", attempt,
				"max_retries", *rt.cfg.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI stage succeeded after retry",
					"stage", stage,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"stage", stage,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI stage failed after all retry attempts",
		"stage", stage,
		"total_attempts", *rt.cfg.MaxRetries+1)

	return nil, fmt.Errorf("stage '%s' failed after %d retries: %w", stage, *rt.cfg.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection refused) are retryable
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeStage is a generic helper running one pipeline stage with common
// tracing, timeout, circuit breaker, retry and parsing logic. Transport
// failures map to AI_SERVICE_FAILED or AI_TIMEOUT; a response that cannot
// be unmarshaled or fails validation maps to AI_RESPONSE_PARSE_FAILED and
// must not be retried by callers.
func executeStage[Out any](
	g *GeminiProvider,
	ctx context.Context,
	stage string,
	userPrompt string,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	rt, ok := g.stages[stage]
	if !ok {
		return output, nil, errors.NewInternalError(errors.ErrCodeInternalError,
			"Unknown pipeline stage: "+stage, nil)
	}

	tracer := otel.Tracer("hiresight.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+stage)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", rt.cfg.Model),
		attribute.Float64("ai.temperature", float64(*rt.cfg.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   stageResponseSchema(stage),
	}
	if *rt.cfg.Temperature > 0 {
		genaiConfig.Temperature = rt.cfg.Temperature
	}

	systemPrompt := g.getSystemPrompt(stage, rt)
	if *rt.cfg.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	callCtx, cancel := context.WithTimeout(ctx, *rt.cfg.Timeout)
	defer cancel()

	result, err := rt.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(callCtx, rt, stage, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(callCtx, rt.cfg.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		if stderrors.Is(err, context.DeadlineExceeded) {
			return output, nil, errors.NewAIError(errors.ErrCodeAITimeout,
				"Stage timed out: "+stage, err)
		}
		return output, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+stage, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, errors.NewAIError(errors.ErrCodeAIResponseParse,
			"Failed to parse AI response for "+stage, err)
	}

	if v, ok := any(output).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("success", false))
			return output, nil, errors.NewAIError(errors.ErrCodeAIResponseParse,
				"AI response failed validation for "+stage, err)
		}
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// ParseJob implements Provider for the job description parsing stage
func (g *GeminiProvider) ParseJob(ctx context.Context, jobDescription string) (types.JobRequirements, *TokenUsage, error) {
	userPrompt := g.formatUserPrompt(config.StageParseJob, jobDescription)

	output, tokenUsage, err := executeStage[types.JobRequirements](
		g,
		ctx,
		config.StageParseJob,
		userPrompt,
		attribute.Int("input.job_length", len(jobDescription)),
	)

	if err != nil {
		return types.JobRequirements{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("job.role_title", output.RoleTitle),
			attribute.Int("job.required_skills", len(output.RequiredSkills)),
		)
	}

	return output, tokenUsage, nil
}

// ExtractResume implements Provider for the resume extraction stage
func (g *GeminiProvider) ExtractResume(ctx context.Context, resumeText string) (types.ResumeData, *TokenUsage, error) {
	userPrompt := g.formatUserPrompt(config.StageExtractResume, resumeText)

	output, tokenUsage, err := executeStage[types.ResumeData](
		g,
		ctx,
		config.StageExtractResume,
		userPrompt,
		attribute.Int("input.resume_length", len(resumeText)),
	)

	if err != nil {
		return types.ResumeData{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("resume.skills", len(output.Skills)),
			attribute.Int("resume.positions", len(output.WorkExperience)),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeSkills implements Provider for the skills matching stage
func (g *GeminiProvider) AnalyzeSkills(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.SkillsAnalysis, *TokenUsage, error) {
	userPrompt := g.formatUserPrompt(config.StageAnalyzeSkills, toJSON(job), toJSON(resume))

	output, tokenUsage, err := executeStage[types.SkillsAnalysis](
		g,
		ctx,
		config.StageAnalyzeSkills,
		userPrompt,
		attribute.Int("input.required_skills", len(job.RequiredSkills)),
		attribute.Int("input.candidate_skills", len(resume.Skills)),
	)

	if err != nil {
		return types.SkillsAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Float64("skills.match_score", output.OverallMatchScore),
			attribute.Int("skills.matched", len(output.MatchedSkills)),
			attribute.Int("skills.missing", len(output.MissingCriticalSkills)),
		)
	}

	return output, tokenUsage, nil
}

// EvaluateExperience implements Provider for the experience evaluation stage
func (g *GeminiProvider) EvaluateExperience(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.ExperienceAnalysis, *TokenUsage, error) {
	userPrompt := g.formatUserPrompt(config.StageEvaluateExperience, toJSON(job), toJSON(resume.WorkExperience))

	output, tokenUsage, err := executeStage[types.ExperienceAnalysis](
		g,
		ctx,
		config.StageEvaluateExperience,
		userPrompt,
		attribute.Int("input.positions", len(resume.WorkExperience)),
	)

	if err != nil {
		return types.ExperienceAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Float64("experience.score", output.OverallExperienceScore),
			attribute.Float64("experience.relevant_years", output.RelevantExperienceYears),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeEducation implements Provider for the education analysis stage
func (g *GeminiProvider) AnalyzeEducation(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.EducationAnalysis, *TokenUsage, error) {
	background := struct {
		Education      []types.Education `json:"education"`
		Certifications []string          `json:"certifications"`
	}{resume.Education, resume.Certifications}
	userPrompt := g.formatUserPrompt(config.StageAnalyzeEducation, toJSON(job.EducationRequirements), toJSON(background))

	output, tokenUsage, err := executeStage[types.EducationAnalysis](
		g,
		ctx,
		config.StageAnalyzeEducation,
		userPrompt,
		attribute.Int("input.education_entries", len(resume.Education)),
		attribute.Int("input.certifications", len(resume.Certifications)),
	)

	if err != nil {
		return types.EducationAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Float64("education.score", output.OverallEducationScore),
			attribute.Bool("education.level_match", output.EducationLevelMatch),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeCulturalFit implements Provider for the cultural fit stage
func (g *GeminiProvider) AnalyzeCulturalFit(ctx context.Context, job types.JobRequirements, resume types.ResumeData) (types.CulturalFitAnalysis, *TokenUsage, error) {
	userPrompt := g.formatUserPrompt(config.StageAnalyzeCulturalFit, toJSON(job.CultureKeywords), toJSON(resume))

	output, tokenUsage, err := executeStage[types.CulturalFitAnalysis](
		g,
		ctx,
		config.StageAnalyzeCulturalFit,
		userPrompt,
		attribute.Int("input.culture_keywords", len(job.CultureKeywords)),
	)

	if err != nil {
		return types.CulturalFitAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Float64("cultural_fit.score", output.CulturalFitScore),
			attribute.Float64("cultural_fit.adaptability", output.AdaptabilityScore),
		)
	}

	return output, tokenUsage, nil
}

// GenerateReport implements Provider for the report synthesis stage
func (g *GeminiProvider) GenerateReport(ctx context.Context, input ReportInput) (types.ComprehensiveReport, *TokenUsage, error) {
	rt, ok := g.stages[config.StageGenerateReport]
	if !ok {
		return types.ComprehensiveReport{}, nil, errors.NewInternalError(errors.ErrCodeInternalError,
			"Unknown pipeline stage: "+config.StageGenerateReport, nil)
	}
	userPrompt := fmt.Sprintf(g.getUserPrompt(config.StageGenerateReport, rt),
		input.OverallScore,
		toJSON(input.Job),
		toJSON(input.Resume),
		toJSON(input.Skills),
		toJSON(input.Experience),
		toJSON(input.Education),
		toJSON(input.CulturalFit),
	)

	output, tokenUsage, err := executeStage[types.ComprehensiveReport](
		g,
		ctx,
		config.StageGenerateReport,
		userPrompt,
		attribute.Float64("input.overall_score", input.OverallScore),
	)

	if err != nil {
		return types.ComprehensiveReport{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("report.recommendation", output.OverallRecommendation),
			attribute.Float64("report.hiring_confidence", output.HiringConfidence),
			attribute.Int("report.interview_questions", len(output.InterviewQuestions)),
		)
	}

	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns per-stage circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := make(map[string]any, len(g.stages)+2)
	healthy := g.modelBreaker.IsModelHealthy()
	for stage, rt := range g.stages {
		stats[stage] = rt.breaker.GetStats()
		healthy = healthy && rt.breaker.IsHealthy()
	}
	stats["model_operations"] = g.modelBreaker.GetModelStats()
	stats["overall_healthy"] = healthy

	return stats
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// getSystemPrompt resolves the system prompt for a stage, preferring
// hot-reloaded file content over configuration over the built-in default.
func (g *GeminiProvider) getSystemPrompt(stage string, rt *stageRuntime) string {
	loaded := config.GetLoadedStagePrompts(stage)
	return resolvePrompt(loaded.System, rt.cfg.Prompts.System, defaultSystemPrompt(stage))
}

// getUserPrompt resolves the user prompt template for a stage.
func (g *GeminiProvider) getUserPrompt(stage string, rt *stageRuntime) string {
	loaded := config.GetLoadedStagePrompts(stage)
	return resolvePrompt(loaded.User, rt.cfg.Prompts.User, defaultUserPrompt(stage))
}

// formatUserPrompt fills a stage's user prompt template with dynamic content.
func (g *GeminiProvider) formatUserPrompt(stage string, args ...any) string {
	rt, ok := g.stages[stage]
	if !ok {
		return ""
	}
	return fmt.Sprintf(g.getUserPrompt(stage, rt), args...)
}

// toJSON renders a value as indented JSON for prompt interpolation.
func toJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from a Gemini response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
