package server

import (
	"time"

	"hireready/internal/config"
	"hireready/internal/coverletter"
	hirereadyErrors "hireready/internal/errors"
	"hireready/internal/pipeline"
	"hireready/internal/render"
	"hireready/internal/types"
)

// AnalyzeRequest represents the JSON request body for the analyze endpoint.
// The endpoint alternatively accepts multipart form data with a resume file.
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// CoverLetterRequest represents the request body for the coverletter endpoint.
// Either the three analyses or resumeText + jobDescription must be provided.
type CoverLetterRequest struct {
	Job            *types.JobAnalysis    `json:"job,omitempty"`
	Resume         *types.ResumeAnalysis `json:"resume,omitempty"`
	Match          *types.MatchAnalysis  `json:"match,omitempty"`
	ResumeText     string                `json:"resumeText,omitempty"`
	JobDescription string                `json:"jobDescription,omitempty"`
	CompanyName    string                `json:"companyName,omitempty"`
	PositionTitle  string                `json:"positionTitle,omitempty"`
	Tone           string                `json:"tone,omitempty"`
}

// OptimizeRequest represents the JSON request body for the optimize endpoint.
// When Match is nil the server runs the analysis pipeline first.
type OptimizeRequest struct {
	ResumeText     string               `json:"resumeText"`
	JobDescription string               `json:"jobDescription,omitempty"`
	Match          *types.MatchAnalysis `json:"match,omitempty"`
	CompanyName    string               `json:"companyName,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Analysis components
	Pipeline    *pipeline.Pipeline
	CoverLetter *coverletter.Generator
	Renderer    *render.Renderer

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *hirereadyErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *hirereadyErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	analysisPipeline, err := pipeline.New(appCfg, logger)
	if err != nil {
		return nil, err
	}

	generator, err := coverletter.New(appCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Pipeline:       analysisPipeline,
		CoverLetter:    generator,
		Renderer:       render.NewRenderer(),
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}, nil
}
