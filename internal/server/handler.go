package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hiresight/internal/errors"
	"hiresight/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// createAnalyzeResumeHandler handles multipart resume uploads: extracts text
// from the uploaded file and runs the full analysis pipeline.
func (s *Server) createAnalyzeResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hiresight.api")
		ctx, span := tracer.Start(ctx, "api.analyze_resume")
		defer span.End()

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart form", err.Error(), http.StatusBadRequest)
			return
		}

		jobDescription := r.FormValue("job_description")
		if strings.TrimSpace(jobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job_description field is required", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("resume_file")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume file", "resume_file field is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err.Error())
			}
		}()

		if err := s.extractor.ValidateUpload(header.Filename, header.Size); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume file", err.Error(), http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read resume file", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.extractor.ExtractText(header.Filename, data)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			writeErrorResponse(w, "Failed to extract resume text", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.resume_filename", header.Filename),
			attribute.Int64("request.resume_size", header.Size),
		)

		s.runAnalysis(ctx, w, om, jobDescription, resumeText)
	}
}

// createAnalyzeTextHandler handles JSON requests carrying the resume as
// plain text.
func (s *Server) createAnalyzeTextHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hiresight.api")
		ctx, span := tracer.Start(ctx, "api.analyze_resume_text")
		defer span.End()

		var req AnalyzeTextRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		s.runAnalysis(ctx, w, om, req.JobDescription, req.ResumeText)
	}
}

// runAnalysis executes the workflow for one request and writes the dashboard
// document or a single descriptive error.
func (s *Server) runAnalysis(ctx context.Context, w http.ResponseWriter, om *observability.ObservabilityManager, jobDescription, resumeText string) {
	analysisID := uuid.NewString()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("analysis.id", analysisID),
		attribute.Int("request.job_length", len(jobDescription)),
		attribute.Int("request.resume_length", len(resumeText)),
	)

	s.Logger.Info("Starting candidate analysis",
		"analysis_id", analysisID,
		"job_length", len(jobDescription),
		"resume_length", len(resumeText))

	metrics := om.GetMetrics()

	data, err := s.engine.Run(ctx, jobDescription, resumeText)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "pipeline"))
		metrics.RecordAnalysisCompleted(ctx, false, om,
			attribute.String("analysis.id", analysisID))
		s.Logger.LogError(err, "Candidate analysis failed", "analysis_id", analysisID)

		message := "Analysis failed"
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			message = appErr.Message
		}
		writeErrorResponse(w, message, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.RecordAnalysisCompleted(ctx, true, om,
		attribute.String("analysis.id", analysisID))

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("response.overall_score", data.ScoringOverview.OverallFitnessScore),
		attribute.String("response.ranking", data.ScoringOverview.RankingCategory),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := originalMiddleware(next)

		return func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			limited(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(), om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		}
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
