package cli

import (
	"context"
	"fmt"

	"hireready/internal/ai"
	"hireready/internal/common"
	"hireready/internal/pipeline"
	"hireready/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file] [job-description-file]",
	Short: "Analyze how well a resume matches a job description",
	Long: `Analyze a resume against a job description using the full three-step
pipeline: job analysis, resume analysis, and match comparison.

The resume file may be a .pdf or .docx document (text is extracted
automatically) or a plain-text file. The report includes:
- Structured job and resume analyses
- Overall match percentage with matching and missing skills
- Skills gap, experience, and education comparisons
- Improvement recommendations and ATS optimization suggestions`,
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

	analysisPipeline, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create analysis pipeline: %w", err)
	}
	defer func() {
		if err := analysisPipeline.Close(); err != nil {
			logger.Warn("Failed to close analysis pipeline", "error", err)
		}
	}()

	createInput := func(contents []string) (types.SuggestATSInput, error) {
		if len(contents) != 2 {
			return types.SuggestATSInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.SuggestATSInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.SuggestATSInput, cfg common.CommandConfig) {
		logger.Info("Starting resume match analysis",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input types.SuggestATSInput) (types.MatchReport, *ai.TokenUsage, error) {
		return analysisPipeline.Run(ctx, input.ResumeText, input.JobDescription)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume match: %w", err)
	}
	logger.Info("Resume match analysis completed successfully")
	return nil
}
