package common

import (
	"context"
	"time"

	"hiresight/internal/errors"
	"hiresight/internal/fileproc"
	"hiresight/internal/workflow"
)

// stageLogger reports pipeline stage progress to the CLI logger.
type stageLogger struct {
	logger *errors.Logger
}

func (sl stageLogger) StageCompleted(ctx context.Context, stage string, duration time.Duration, tokensUsed int64, err error) {
	if sl.logger == nil {
		return
	}
	if err != nil {
		sl.logger.Warn("Pipeline stage failed",
			"stage", stage, "duration", duration, "error", err)
		return
	}
	sl.logger.Info("Pipeline stage completed",
		"stage", stage, "duration", duration, "tokens", tokensUsed)
}

// RunAnalysisCommand encapsulates the common logic for the file-based analysis
// command: it reads the job description and resume files, runs the analysis
// pipeline and writes the resulting dashboard to the configured output.
func RunAnalysisCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	jobFile, resumeFile string,
	engine *workflow.Engine,
	extractor *fileproc.Extractor,
) error {
	// Pass the logger when creating helpers
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	jobDescription, err := fileProcessor.ReadTextFile(jobFile)
	if err != nil {
		return err
	}

	resumeText, err := fileProcessor.ReadResumeFile(extractor, resumeFile)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Starting candidate analysis",
			"job_chars", len(jobDescription),
			"resume_chars", len(resumeText),
			"output_format", cmdConfig.OutputFormat)
	}

	// Report per-stage progress and token usage as the pipeline runs
	engine.SetObserver(stageLogger{logger: logger})

	result, err := engine.Run(ctx, jobDescription, resumeText)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
