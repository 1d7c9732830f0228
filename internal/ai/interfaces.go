package ai

import (
	"context"

	"hireready/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	AnalyzeJob(ctx context.Context, input types.AnalyzeJobInput) (types.JobAnalysis, *TokenUsage, error)
	AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.ResumeAnalysis, *TokenUsage, error)
	AnalyzeMatch(ctx context.Context, input types.AnalyzeMatchInput) (types.MatchAnalysis, *TokenUsage, error)
	SuggestATS(ctx context.Context, input types.SuggestATSInput) (types.SuggestATSOutput, *TokenUsage, error)
	GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, *TokenUsage, error)
	CoverLetterTips(ctx context.Context, tone string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
