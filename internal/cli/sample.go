package cli

import (
	"fmt"

	"hiresight/internal/common"
	"hiresight/internal/server"

	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample analysis dashboard",
	Long: `Print a fixed sample analysis dashboard. Useful for previewing the
dashboard structure and for developing downstream consumers without
spending AI tokens.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if sampleConfig.OutputFormat == "" {
			sampleConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(sampleConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSample,
}

var sampleConfig common.CommandConfig

func init() {
	sampleCmd.Flags().StringVarP(&sampleConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	sampleCmd.Flags().StringVar(&sampleConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runSample(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	data, err := server.SampleDashboard()
	if err != nil {
		return fmt.Errorf("failed to build sample dashboard: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(data, sampleConfig)
}
