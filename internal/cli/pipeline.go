package cli

import (
	"fmt"

	"hiresight/internal/workflow"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Print the analysis pipeline as a Mermaid diagram",
	Long: `Print the stage graph of the analysis pipeline in Mermaid flowchart
syntax. Paste the output into any Mermaid renderer to visualize the
stage ordering.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := &workflow.Engine{}
		fmt.Print(engine.Describe())
	},
}
