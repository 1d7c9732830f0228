package cli

import (
	"fmt"

	"hireready/internal/common"
	"hireready/internal/pipeline"
	"hireready/internal/render"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Produce an optimized resume PDF",
	Long: `Run the full match analysis and produce a PDF of the resume annotated
with ATS optimization recommendations.

The resume file may be a .pdf or .docx document (text is extracted
automatically) or a plain-text file.`,
	Args: cobra.ExactArgs(2),
	RunE: runOptimize,
}

var optimizeOutput string

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeOutput, "output", "o", "optimized_resume.pdf", "Output PDF file path")
}

func runOptimize(cmd *cobra.Command, args []string) error {
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

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}
	resumeText, jobDescription := contents[0], contents[1]

	logger.Info("Starting resume optimization",
		"resume_chars", len(resumeText),
		"job_chars", len(jobDescription),
		"output_file", optimizeOutput)

	report, _, err := analysisPipeline.Run(cmd.Context(), resumeText, jobDescription)
	if err != nil {
		return fmt.Errorf("failed to analyze resume match: %w", err)
	}

	pdfBytes, err := render.NewRenderer().Render(resumeText, report.Match)
	if err != nil {
		return fmt.Errorf("failed to build resume document: %w", err)
	}

	if err := fileProcessor.WriteFileBytes(optimizeOutput, pdfBytes); err != nil {
		return err
	}

	logger.Info("Optimized resume written successfully",
		"file", optimizeOutput,
		"pdf_bytes", len(pdfBytes),
		"overall_match", report.Summary.OverallMatch,
		"ats_suggestions", len(report.Match.ATSOptimizationSuggestions))
	return nil
}
