package pipeline

import (
	"context"

	"hireready/internal/ai"
	"hireready/internal/config"
	"hireready/internal/errors"
	"hireready/internal/types"
)

// Pipeline chains the three analysis operations: job description analysis,
// resume analysis, and the match comparison of the two. Each operation runs
// against its own provider so model, temperature, and breaker settings stay
// independent. The pipeline holds no analysis state; every run re-invokes
// the model.
type Pipeline struct {
	job    ai.AIProvider
	resume ai.AIProvider
	match  ai.AIProvider
	ats    ai.AIProvider
	logger *errors.Logger
}

// New creates a pipeline with one provider per operation from the
// operation-specific AI configurations
func New(cfg *config.Config, logger *errors.Logger) (*Pipeline, error) {
	jobCfg := cfg.GetAnalyzeJobConfig()
	jobSvc, err := ai.NewService(&jobCfg, "AnalyzeJob", logger)
	if err != nil {
		return nil, err
	}

	resumeCfg := cfg.GetAnalyzeResumeConfig()
	resumeSvc, err := ai.NewService(&resumeCfg, "AnalyzeResume", logger)
	if err != nil {
		return nil, err
	}

	matchCfg := cfg.GetAnalyzeMatchConfig()
	matchSvc, err := ai.NewService(&matchCfg, "AnalyzeMatch", logger)
	if err != nil {
		return nil, err
	}

	atsCfg := cfg.GetSuggestATSConfig()
	atsSvc, err := ai.NewService(&atsCfg, "SuggestATS", logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		job:    jobSvc.Provider,
		resume: resumeSvc.Provider,
		match:  matchSvc.Provider,
		ats:    atsSvc.Provider,
		logger: logger,
	}, nil
}

// newWithProviders wires explicit providers, used by tests
func newWithProviders(job, resume, match, ats ai.AIProvider, logger *errors.Logger) *Pipeline {
	return &Pipeline{job: job, resume: resume, match: match, ats: ats, logger: logger}
}

// AnalyzeJob produces a structured JobAnalysis from free-text job description
func (p *Pipeline) AnalyzeJob(ctx context.Context, jobDescription string) (types.JobAnalysis, *ai.TokenUsage, error) {
	return p.job.AnalyzeJob(ctx, types.AnalyzeJobInput{JobDescription: jobDescription})
}

// AnalyzeResume produces a structured ResumeAnalysis from extracted resume text
func (p *Pipeline) AnalyzeResume(ctx context.Context, resumeText string) (types.ResumeAnalysis, *ai.TokenUsage, error) {
	return p.resume.AnalyzeResume(ctx, types.AnalyzeResumeInput{ResumeText: resumeText})
}

// AnalyzeMatch compares a JobAnalysis against a ResumeAnalysis. If either
// input is empty the model is not invoked and an empty MatchAnalysis comes
// back; there is nothing useful to compare.
func (p *Pipeline) AnalyzeMatch(ctx context.Context, job types.JobAnalysis, resume types.ResumeAnalysis) (types.MatchAnalysis, *ai.TokenUsage, error) {
	if job.IsEmpty() || resume.IsEmpty() {
		p.logger.Warn("Skipping match analysis: job or resume analysis is empty")
		return types.MatchAnalysis{}, nil, nil
	}
	return p.match.AnalyzeMatch(ctx, types.AnalyzeMatchInput{Job: job, Resume: resume})
}

// SuggestATS produces standalone ATS optimization suggestions directly from
// raw resume and job description text, without running the full chain
func (p *Pipeline) SuggestATS(ctx context.Context, resumeText, jobDescription string) ([]types.ATSSuggestion, *ai.TokenUsage, error) {
	output, usage, err := p.ats.SuggestATS(ctx, types.SuggestATSInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeDecode) {
			// Unparseable suggestions degrade to none
			p.logger.Warn("ATS suggestion response could not be parsed, returning no suggestions")
			return nil, usage, nil
		}
		return nil, nil, err
	}
	return output.ATSOptimizationSuggestions, usage, nil
}

// Run executes the full sequential chain and assembles a MatchReport.
// A service failure or an unparseable job/resume analysis aborts the run;
// no partial report escapes. An unparseable match analysis degrades to an
// empty match section so the job and resume analyses still reach the caller.
// The returned usage aggregates tokens across all operations that ran.
func (p *Pipeline) Run(ctx context.Context, resumeText, jobDescription string) (types.MatchReport, *ai.TokenUsage, error) {
	job, jobUsage, err := p.AnalyzeJob(ctx, jobDescription)
	if err != nil {
		return types.MatchReport{}, nil, err
	}

	resume, resumeUsage, err := p.AnalyzeResume(ctx, resumeText)
	if err != nil {
		return types.MatchReport{}, nil, err
	}

	match, matchUsage, err := p.AnalyzeMatch(ctx, job, resume)
	if err != nil {
		if !errors.IsType(err, errors.ErrorTypeDecode) {
			return types.MatchReport{}, nil, err
		}
		p.logger.Warn("Match analysis response could not be parsed, continuing with empty match")
		match = types.MatchAnalysis{}
	}

	usage := sumUsage(jobUsage, resumeUsage, matchUsage)

	p.logger.Info("Analysis pipeline completed",
		"overall_match", match.Summary().OverallMatch,
		"matching_skills", len(match.MatchingSkills),
		"missing_skills", len(match.MissingSkills),
		"total_tokens", totalTokens(usage))

	return types.MatchReport{
		Job:     job,
		Resume:  resume,
		Match:   match,
		Summary: match.Summary(),
	}, usage, nil
}

// breakerStats is implemented by providers that expose circuit breaker state
type breakerStats interface {
	GetCircuitBreakerStats() map[string]any
}

// ModelInfo reports per-operation model availability for health checks
func (p *Pipeline) ModelInfo(ctx context.Context) map[string]any {
	return map[string]any{
		"analyzeJob":    p.job.GetModelInfo(ctx),
		"analyzeResume": p.resume.GetModelInfo(ctx),
		"analyzeMatch":  p.match.GetModelInfo(ctx),
		"suggestAts":    p.ats.GetModelInfo(ctx),
	}
}

// BreakerStats reports per-operation circuit breaker statistics
func (p *Pipeline) BreakerStats() map[string]any {
	stats := make(map[string]any)
	for name, provider := range map[string]ai.AIProvider{
		"analyzeJob":    p.job,
		"analyzeResume": p.resume,
		"analyzeMatch":  p.match,
		"suggestAts":    p.ats,
	} {
		if bs, ok := provider.(breakerStats); ok {
			stats[name] = bs.GetCircuitBreakerStats()
		}
	}
	return stats
}

// Close releases all providers
func (p *Pipeline) Close() error {
	for _, provider := range []ai.AIProvider{p.job, p.resume, p.match, p.ats} {
		if provider != nil {
			_ = provider.Close()
		}
	}
	return nil
}

// sumUsage folds per-operation usage into one total. Returns nil when no
// operation reported usage, so callers can tell "nothing tracked" apart
// from a zero count.
func sumUsage(usages ...*ai.TokenUsage) *ai.TokenUsage {
	var total *ai.TokenUsage
	for _, usage := range usages {
		if usage == nil {
			continue
		}
		if total == nil {
			total = &ai.TokenUsage{}
		}
		total.InputTokens += usage.InputTokens
		total.OutputTokens += usage.OutputTokens
		total.TotalTokens += usage.TotalTokens
	}
	return total
}

func totalTokens(usage *ai.TokenUsage) int64 {
	if usage == nil {
		return 0
	}
	return usage.TotalTokens
}
