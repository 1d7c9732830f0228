package cli

import (
	"fmt"

	"hireready/internal/common"
	"hireready/internal/coverletter"
	"hireready/internal/errors"

	"github.com/spf13/cobra"
)

var coverLetterCmd = &cobra.Command{
	Use:   "coverletter [resume-file] [job-description-file]",
	Short: "Generate a cover letter for a job application",
	Long: `Generate a personalized cover letter from a resume and a job description.

The resume file may be a .pdf or .docx document (text is extracted
automatically) or a plain-text file. Use --tone to control the writing
style and --company/--position to personalize the letter. With --tips,
no files are needed and the command prints writing tips for the
selected tone instead.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if coverLetterTips {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runCoverLetter,
}

var (
	coverLetterOutput   string
	coverLetterTone     string
	coverLetterCompany  string
	coverLetterPosition string
	coverLetterTips     bool
)

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterOutput, "output", "o", "", "Output file path (default: stdout)")
	coverLetterCmd.Flags().StringVar(&coverLetterTone, "tone", "professional", "Tone of the cover letter (professional, enthusiastic, creative, formal)")
	coverLetterCmd.Flags().StringVar(&coverLetterCompany, "company", "", "Company name to address the letter to")
	coverLetterCmd.Flags().StringVar(&coverLetterPosition, "position", "", "Position title to reference in the letter")
	coverLetterCmd.Flags().BoolVar(&coverLetterTips, "tips", false, "Print writing tips for the selected tone instead of generating a letter")
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	generator, err := coverletter.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create cover letter generator: %w", err)
	}
	defer func() {
		if err := generator.Close(); err != nil {
			logger.Warn("Failed to close cover letter generator", "error", err)
		}
	}()

	if coverLetterTips {
		tips := generator.Tips(cmd.Context(), coverLetterTone)
		return writeTextOutput(logger, coverLetterOutput, tips)
	}

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	logger.Info("Starting cover letter generation",
		"resume_chars", len(contents[0]),
		"job_chars", len(contents[1]),
		"tone", coverLetterTone,
		"company", coverLetterCompany)

	letter := generator.GenerateFromRaw(cmd.Context(), contents[0], contents[1],
		coverLetterCompany, coverLetterPosition, coverLetterTone)

	if err := writeTextOutput(logger, coverLetterOutput, letter); err != nil {
		return err
	}
	logger.Info("Cover letter generation completed successfully")
	return nil
}

// writeTextOutput writes plain text to a file or stdout
func writeTextOutput(logger *errors.Logger, outputFile, text string) error {
	if outputFile == "" {
		fmt.Println(text)
		return nil
	}

	fileProcessor := common.NewFileProcessor(logger)
	if err := fileProcessor.ValidateOutputFile(outputFile); err != nil {
		return err
	}
	if err := fileProcessor.WriteFile(outputFile, text); err != nil {
		return err
	}
	logger.Info("Output written successfully", "file", outputFile)
	return nil
}
