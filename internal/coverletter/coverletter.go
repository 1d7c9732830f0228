package coverletter

import (
	"context"

	"hireready/internal/ai"
	"hireready/internal/config"
	"hireready/internal/errors"
	"hireready/internal/types"
)

// Fallback strings returned when the model call fails. The generator never
// surfaces a hard error to its caller: a broken upstream degrades to a
// retry message so the surrounding flow keeps working.
const (
	FallbackMessage     = "Error generating cover letter. Please try again."
	TipsFallbackMessage = "Error generating tips. Please try again."
)

// Generator produces cover letter prose and writing tips
type Generator struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

// New creates a generator from the cover letter operation configuration
func New(cfg *config.Config, logger *errors.Logger) (*Generator, error) {
	opCfg := cfg.GetCoverLetterConfig()
	svc, err := ai.NewService(&opCfg, "CoverLetter", logger)
	if err != nil {
		return nil, err
	}
	return &Generator{provider: svc.Provider, logger: logger}, nil
}

// newWithProvider wires an explicit provider, used by tests
func newWithProvider(provider ai.AIProvider, logger *errors.Logger) *Generator {
	return &Generator{provider: provider, logger: logger}
}

// Generate writes a cover letter from the three analyses. Tone is free-form
// and forwarded verbatim; suggested values are professional, enthusiastic,
// confident, and friendly.
func (g *Generator) Generate(ctx context.Context, job types.JobAnalysis, resume types.ResumeAnalysis, match types.MatchAnalysis, tone string) string {
	letter, usage, err := g.provider.GenerateCoverLetter(ctx, types.CoverLetterInput{
		Job:    &job,
		Resume: &resume,
		Match:  &match,
		Tone:   tone,
	})
	if err != nil {
		g.logger.LogError(err, "Cover letter generation failed", "tone", tone)
		return FallbackMessage
	}

	g.logger.Info("Cover letter generated",
		"tone", tone,
		"length", len(letter),
		"total_tokens", tokenTotal(usage))
	return letter
}

// GenerateFromRaw writes a cover letter directly from resume and job
// description text, without requiring prior analyses. Empty company and
// position fall back to generic phrasing inside the provider.
func (g *Generator) GenerateFromRaw(ctx context.Context, resumeText, jobDescription, companyName, positionTitle, tone string) string {
	letter, usage, err := g.provider.GenerateCoverLetter(ctx, types.CoverLetterInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		CompanyName:    companyName,
		PositionTitle:  positionTitle,
		Tone:           tone,
	})
	if err != nil {
		g.logger.LogError(err, "Cover letter generation failed", "tone", tone, "company", companyName)
		return FallbackMessage
	}

	g.logger.Info("Cover letter generated",
		"tone", tone,
		"company", companyName,
		"length", len(letter),
		"total_tokens", tokenTotal(usage))
	return letter
}

// Tips produces generic cover letter writing advice for the given tone.
// No resume or job context is required.
func (g *Generator) Tips(ctx context.Context, tone string) string {
	tips, usage, err := g.provider.CoverLetterTips(ctx, tone)
	if err != nil {
		g.logger.LogError(err, "Cover letter tips generation failed", "tone", tone)
		return TipsFallbackMessage
	}

	g.logger.Info("Cover letter tips generated",
		"tone", tone,
		"total_tokens", tokenTotal(usage))
	return tips
}

// ModelInfo reports model availability for health checks
func (g *Generator) ModelInfo(ctx context.Context) any {
	return g.provider.GetModelInfo(ctx)
}

// Close releases the underlying provider
func (g *Generator) Close() error {
	return g.provider.Close()
}

func tokenTotal(usage *ai.TokenUsage) int64 {
	if usage == nil {
		return 0
	}
	return usage.TotalTokens
}
