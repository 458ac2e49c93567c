package cli

import (
	"fmt"

	"hiresight/internal/ai"
	"hiresight/internal/common"
	"hiresight/internal/fileproc"
	"hiresight/internal/workflow"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-description-file] [resume-file]",
	Short: "Analyze a candidate resume against a job description",
	Long: `Analyze a candidate resume against a job description using the full
AI analysis pipeline. The resume may be a plain-text file or a PDF.

The analysis includes:
- Skills matching with transferable skill detection
- Experience relevance and career progression evaluation
- Education and certification alignment
- Cultural fit assessment
- A comprehensive hiring report with interview questions`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	aiService, err := ai.NewService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	engine, err := workflow.NewEngine(workflow.StagesFromProvider(aiService.Provider), nil, nil, logger)
	if err != nil {
		return fmt.Errorf("failed to create workflow engine: %w", err)
	}

	extractor := fileproc.NewExtractor(&cfg.App, logger)

	err = common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args[0],
		args[1],
		engine,
		extractor,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze candidate: %w", err)
	}
	logger.Info("Candidate analysis completed successfully")
	return nil
}
