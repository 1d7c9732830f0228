package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"hireready/internal/config"
	hirereadyErrors "hireready/internal/errors"
	"hireready/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *hirereadyErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *hirereadyErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, hirereadyErrors.NewAIError(hirereadyErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breakers with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	timeout := getAIModelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		// Log the error for debugging
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	// Log successful check
	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential
// backoff. MaxRetries defaults to 0, so the normal path is one attempt.
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Log retry attempt
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	if *g.config.MaxRetries > 0 {
		g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
			"operation", operation,
			"total_attempts", *g.config.MaxRetries+1)
		return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
	}

	return nil, lastErr
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// complete is the single-shot completion core behind every operation. All
// calls share the same tracing, timeout, circuit breaker, and error collapse:
// whatever the upstream failure cause, callers see one AI service error.
func (g *GeminiProvider) complete(ctx context.Context, operationName, userPrompt, systemPrompt string, spanAttributes ...attribute.KeyValue) (string, *TokenUsage, error) {
	tracer := otel.Tracer("hireready.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	genaiConfig := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	// Bound the upstream call so a hung request cannot stall the caller
	ctx, cancel := context.WithTimeout(ctx, *g.config.Timeout)
	defer cancel()

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		if errors.Is(err, context.DeadlineExceeded) {
			return "", nil, hirereadyErrors.NewAIError(hirereadyErrors.ErrCodeAITimeout,
				"Timed out generating content for "+operationName, err)
		}
		return "", nil, hirereadyErrors.NewAIError(hirereadyErrors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result.Text(), tokenUsage, nil
}

// AnalyzeJob implements AIProvider interface for job description analysis
func (g *GeminiProvider) AnalyzeJob(ctx context.Context, input types.AnalyzeJobInput) (types.JobAnalysis, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("analyzeJob")
	userPrompt := fmt.Sprintf(g.getUserPrompt("analyzeJob"), truncate(input.JobDescription, maxJobDescriptionChars))

	raw, tokenUsage, err := g.complete(ctx, "analyze_job", userPrompt, systemPrompt,
		attribute.Int("input.job_length", len(input.JobDescription)))
	if err != nil {
		return types.JobAnalysis{}, nil, err
	}

	output, decodeErr := DecodeJSON[types.JobAnalysis](raw)
	if decodeErr != nil {
		return types.JobAnalysis{}, tokenUsage, decodeErr
	}
	return output, tokenUsage, nil
}

// AnalyzeResume implements AIProvider interface for resume text analysis
func (g *GeminiProvider) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.ResumeAnalysis, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("analyzeResume")
	userPrompt := fmt.Sprintf(g.getUserPrompt("analyzeResume"), truncate(input.ResumeText, maxResumeTextChars))

	raw, tokenUsage, err := g.complete(ctx, "analyze_resume", userPrompt, systemPrompt,
		attribute.Int("input.resume_length", len(input.ResumeText)))
	if err != nil {
		return types.ResumeAnalysis{}, nil, err
	}

	output, decodeErr := DecodeJSON[types.ResumeAnalysis](raw)
	if decodeErr != nil {
		return types.ResumeAnalysis{}, tokenUsage, decodeErr
	}
	return output, tokenUsage, nil
}

// AnalyzeMatch implements AIProvider interface for job/resume comparison
func (g *GeminiProvider) AnalyzeMatch(ctx context.Context, input types.AnalyzeMatchInput) (types.MatchAnalysis, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("analyzeMatch")
	userPrompt := fmt.Sprintf(g.getUserPrompt("analyzeMatch"),
		truncate(analysisJSON(input.Job), maxAnalysisJSONChars),
		truncate(analysisJSON(input.Resume), maxAnalysisJSONChars))

	raw, tokenUsage, err := g.complete(ctx, "analyze_match", userPrompt, systemPrompt)
	if err != nil {
		return types.MatchAnalysis{}, nil, err
	}

	output, decodeErr := DecodeJSON[types.MatchAnalysis](raw)
	if decodeErr != nil {
		return types.MatchAnalysis{}, tokenUsage, decodeErr
	}
	return output, tokenUsage, nil
}

// SuggestATS implements AIProvider interface for standalone ATS suggestions
func (g *GeminiProvider) SuggestATS(ctx context.Context, input types.SuggestATSInput) (types.SuggestATSOutput, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("suggestAts")
	userPrompt := fmt.Sprintf(g.getUserPrompt("suggestAts"),
		truncate(input.ResumeText, maxResumeTextChars),
		truncate(input.JobDescription, maxATSJobDescriptionChars))

	raw, tokenUsage, err := g.complete(ctx, "suggest_ats", userPrompt, systemPrompt,
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.Int("input.job_length", len(input.JobDescription)))
	if err != nil {
		return types.SuggestATSOutput{}, nil, err
	}

	output, decodeErr := DecodeJSON[types.SuggestATSOutput](raw)
	if decodeErr != nil {
		return types.SuggestATSOutput{}, tokenUsage, decodeErr
	}
	return output, tokenUsage, nil
}

// GenerateCoverLetter implements AIProvider interface for cover letter prose.
// The completion is free text, never decoded as JSON. Two template variants:
// from the three analyses when present, otherwise from raw resume and job
// description text.
func (g *GeminiProvider) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, *TokenUsage, error) {
	tone := input.Tone
	if tone == "" {
		tone = "professional"
	}

	var userPrompt string
	if input.Job != nil && input.Resume != nil && input.Match != nil {
		userPrompt = fmt.Sprintf(g.getUserPrompt("coverLetter"),
			analysisJSON(input.Job),
			analysisJSON(input.Resume),
			analysisJSON(input.Match),
			tone, tone)
	} else {
		companyName := input.CompanyName
		if companyName == "" {
			companyName = "the company"
		}
		positionTitle := input.PositionTitle
		if positionTitle == "" {
			positionTitle = "this position"
		}
		userPrompt = fmt.Sprintf(DefaultUserPrompts.CoverLetterRaw,
			input.ResumeText,
			input.JobDescription,
			companyName,
			positionTitle,
			tone, tone)
	}

	raw, tokenUsage, err := g.complete(ctx, "cover_letter", userPrompt, g.getSystemPrompt("coverLetter"),
		attribute.String("input.tone", tone))
	if err != nil {
		return "", nil, err
	}

	return strings.TrimSpace(raw), tokenUsage, nil
}

// CoverLetterTips implements AIProvider interface for tone-specific advice
func (g *GeminiProvider) CoverLetterTips(ctx context.Context, tone string) (string, *TokenUsage, error) {
	if tone == "" {
		tone = "professional"
	}
	userPrompt := fmt.Sprintf(DefaultUserPrompts.CoverLetterTips, tone)

	raw, tokenUsage, err := g.complete(ctx, "cover_letter_tips", userPrompt, DefaultSystemPrompts.CoverLetterTips,
		attribute.String("input.tone", tone))
	if err != nil {
		return "", nil, err
	}

	return strings.TrimSpace(raw), tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// getSystemPrompt returns the appropriate system prompt, preferring a
// config-supplied override over the hardcoded default
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	configured := g.config.CustomPrompts.SystemPrompts

	switch promptType {
	case "analyzeJob":
		return resolvePrompt(configured.AnalyzeJob, DefaultSystemPrompts.AnalyzeJob)
	case "analyzeResume":
		return resolvePrompt(configured.AnalyzeResume, DefaultSystemPrompts.AnalyzeResume)
	case "analyzeMatch":
		return resolvePrompt(configured.AnalyzeMatch, DefaultSystemPrompts.AnalyzeMatch)
	case "suggestAts":
		return resolvePrompt(configured.SuggestATS, DefaultSystemPrompts.SuggestATS)
	case "coverLetter":
		return resolvePrompt(configured.CoverLetter, DefaultSystemPrompts.CoverLetter)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	configured := g.config.CustomPrompts.UserPrompts

	switch promptType {
	case "analyzeJob":
		return resolvePrompt(configured.AnalyzeJob, DefaultUserPrompts.AnalyzeJob)
	case "analyzeResume":
		return resolvePrompt(configured.AnalyzeResume, DefaultUserPrompts.AnalyzeResume)
	case "analyzeMatch":
		return resolvePrompt(configured.AnalyzeMatch, DefaultUserPrompts.AnalyzeMatch)
	case "suggestAts":
		return resolvePrompt(configured.SuggestATS, DefaultUserPrompts.SuggestATS)
	case "coverLetter":
		return resolvePrompt(configured.CoverLetter, DefaultUserPrompts.CoverLetter)
	default:
		return ""
	}
}

// resolvePrompt selects the configured prompt when present, otherwise the default
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	return 10 * time.Second
}
