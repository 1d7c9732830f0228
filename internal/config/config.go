package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Config File values
// 2. Environment Variables (HIREREADY_AI_APIKEY)
// 3. GOOGLE_API_KEY / GEMINI_API_KEY fallbacks
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds AI service configuration
type AIConfig struct {
	// Global/fallback configuration
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig  `mapstructure:"customPrompts"`

	// Operation-specific configurations
	AnalyzeJob    OperationAIConfig `mapstructure:"analyzeJob"`
	AnalyzeResume OperationAIConfig `mapstructure:"analyzeResume"`
	AnalyzeMatch  OperationAIConfig `mapstructure:"analyzeMatch"`
	SuggestATS    OperationAIConfig `mapstructure:"suggestAts"`
	CoverLetter   OperationAIConfig `mapstructure:"coverLetter"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for specific operations
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `mapstructure:"systemPrompts"`
	UserPrompts   UserPrompts   `mapstructure:"userPrompts"`
}

// SystemPrompts contains system-level instructions
type SystemPrompts struct {
	AnalyzeJob    string `mapstructure:"analyzeJob"`
	AnalyzeResume string `mapstructure:"analyzeResume"`
	AnalyzeMatch  string `mapstructure:"analyzeMatch"`
	SuggestATS    string `mapstructure:"suggestAts"`
	CoverLetter   string `mapstructure:"coverLetter"`
}

// UserPrompts contains user-level prompt templates
type UserPrompts struct {
	AnalyzeJob    string `mapstructure:"analyzeJob"`
	AnalyzeResume string `mapstructure:"analyzeResume"`
	AnalyzeMatch  string `mapstructure:"analyzeMatch"`
	SuggestATS    string `mapstructure:"suggestAts"`
	CoverLetter   string `mapstructure:"coverLetter"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool          `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool          `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
	Window         time.Duration `mapstructure:"window"`         // Rate limiting window duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig holds fine-grained custom metrics configuration
type CustomMetricsConfig struct {
	AIOperations    AIOperationsMetricsConfig   `mapstructure:"aiOperations"`
	BusinessMetrics BusinessMetricsConfig       `mapstructure:"businessMetrics"`
	Infrastructure  InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// AIOperationsMetricsConfig holds AI operation metrics configuration
type AIOperationsMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackDuration   bool `mapstructure:"trackDuration"`
	TrackTokenUsage bool `mapstructure:"trackTokenUsage"`
	TrackModelInfo  bool `mapstructure:"trackModelInfo"`
}

// BusinessMetricsConfig holds business metrics configuration
type BusinessMetricsConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	TrackSuccessRates bool `mapstructure:"trackSuccessRates"`
	TrackContentSizes bool `mapstructure:"trackContentSizes"`
}

// InfrastructureMetricsConfig holds infrastructure metrics configuration
type InfrastructureMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackRateLimits bool `mapstructure:"trackRateLimits"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	AIModelCheckTimeout time.Duration `mapstructure:"aiModelCheckTimeout"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	// Load .env into the process environment when present
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("HIREREADY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'HIREREADY'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/hireready/")
	v.AddConfigPath("$HOME/.hireready")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/hireready/, $HOME/.hireready, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	// Apply fallback logic for credentials and derived values
	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 0) // Single attempt unless explicitly raised
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - AnalyzeJob operation defaults
	v.SetDefault("ai.analyzeJob.provider", "gemini")
	v.SetDefault("ai.analyzeJob.model", "")
	v.SetDefault("ai.analyzeJob.timeout", 60*time.Second)
	v.SetDefault("ai.analyzeJob.apiKey", "")
	v.SetDefault("ai.analyzeJob.temperature", 0.1) // Favor deterministic extraction

	// AI Configuration - AnalyzeResume operation defaults
	v.SetDefault("ai.analyzeResume.provider", "gemini")
	v.SetDefault("ai.analyzeResume.model", "")
	v.SetDefault("ai.analyzeResume.timeout", 60*time.Second)
	v.SetDefault("ai.analyzeResume.apiKey", "")
	v.SetDefault("ai.analyzeResume.temperature", 0.1)

	// AI Configuration - AnalyzeMatch operation defaults
	v.SetDefault("ai.analyzeMatch.provider", "gemini")
	v.SetDefault("ai.analyzeMatch.model", "")
	v.SetDefault("ai.analyzeMatch.timeout", 90*time.Second) // Longest prompt of the chain
	v.SetDefault("ai.analyzeMatch.apiKey", "")
	v.SetDefault("ai.analyzeMatch.temperature", 0.1)

	// AI Configuration - SuggestATS operation defaults
	v.SetDefault("ai.suggestAts.provider", "gemini")
	v.SetDefault("ai.suggestAts.model", "")
	v.SetDefault("ai.suggestAts.timeout", 60*time.Second)
	v.SetDefault("ai.suggestAts.apiKey", "")
	v.SetDefault("ai.suggestAts.temperature", 0.2)

	// AI Configuration - CoverLetter operation defaults
	v.SetDefault("ai.coverLetter.provider", "gemini")
	v.SetDefault("ai.coverLetter.model", "")
	v.SetDefault("ai.coverLetter.timeout", 90*time.Second)
	v.SetDefault("ai.coverLetter.apiKey", "")
	v.SetDefault("ai.coverLetter.temperature", 0.7) // Favor variety in prose

	// Circuit Breaker Configuration defaults for all operations
	for _, op := range []string{"analyzeJob", "analyzeResume", "analyzeMatch", "suggestAts", "coverLetter"} {
		v.SetDefault("ai."+op+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+op+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.failureThreshold", 0.6)
	}

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 120*time.Second) // Pipeline runs inside the handler
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB covers typical resume uploads

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "hireready")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI API key is required (set HIREREADY_AI_APIKEY or GOOGLE_API_KEY environment variable)")
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.App.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	return nil
}

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAnalyzeJobConfig returns the AI configuration for job analysis with fallback to global config
func (c *Config) GetAnalyzeJobConfig() OperationAIConfig {
	config := c.AI.AnalyzeJob
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.AnalyzeJob == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeJob = c.AI.CustomPrompts.SystemPrompts.AnalyzeJob
	}
	if config.CustomPrompts.UserPrompts.AnalyzeJob == "" {
		config.CustomPrompts.UserPrompts.AnalyzeJob = c.AI.CustomPrompts.UserPrompts.AnalyzeJob
	}

	return config
}

// GetAnalyzeResumeConfig returns the AI configuration for resume analysis with fallback to global config
func (c *Config) GetAnalyzeResumeConfig() OperationAIConfig {
	config := c.AI.AnalyzeResume
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.AnalyzeResume == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResume = c.AI.CustomPrompts.SystemPrompts.AnalyzeResume
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResume == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResume = c.AI.CustomPrompts.UserPrompts.AnalyzeResume
	}

	return config
}

// GetAnalyzeMatchConfig returns the AI configuration for match analysis with fallback to global config
func (c *Config) GetAnalyzeMatchConfig() OperationAIConfig {
	config := c.AI.AnalyzeMatch
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.AnalyzeMatch == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeMatch = c.AI.CustomPrompts.SystemPrompts.AnalyzeMatch
	}
	if config.CustomPrompts.UserPrompts.AnalyzeMatch == "" {
		config.CustomPrompts.UserPrompts.AnalyzeMatch = c.AI.CustomPrompts.UserPrompts.AnalyzeMatch
	}

	return config
}

// GetSuggestATSConfig returns the AI configuration for ATS suggestions with fallback to global config
func (c *Config) GetSuggestATSConfig() OperationAIConfig {
	config := c.AI.SuggestATS
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.SuggestATS == "" {
		config.CustomPrompts.SystemPrompts.SuggestATS = c.AI.CustomPrompts.SystemPrompts.SuggestATS
	}
	if config.CustomPrompts.UserPrompts.SuggestATS == "" {
		config.CustomPrompts.UserPrompts.SuggestATS = c.AI.CustomPrompts.UserPrompts.SuggestATS
	}

	return config
}

// GetCoverLetterConfig returns the AI configuration for cover letter generation with fallback to global config
func (c *Config) GetCoverLetterConfig() OperationAIConfig {
	config := c.AI.CoverLetter
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.CoverLetter == "" {
		config.CustomPrompts.SystemPrompts.CoverLetter = c.AI.CustomPrompts.SystemPrompts.CoverLetter
	}
	if config.CustomPrompts.UserPrompts.CoverLetter == "" {
		config.CustomPrompts.UserPrompts.CoverLetter = c.AI.CustomPrompts.UserPrompts.CoverLetter
	}

	return config
}

// applyFallbacks applies environment variable fallbacks
func (c *Config) applyFallbacks() {
	// Credential fallbacks shared with other Gemini tooling
	if c.AI.APIKey == "" {
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			c.AI.APIKey = key
		} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.AI.APIKey = key
		}
	}

	// Parse API keys from environment variable if not set in config
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("HIREREADY_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
			// Trim whitespace from each key
			for i, key := range c.Server.APIKeys {
				c.Server.APIKeys[i] = strings.TrimSpace(key)
			}
		}
	}

	// Set dynamic service instance ID if not specified
	if c.Observability.ServiceInstance == "" {
		// Try to get hostname, fallback to default
		if hostname, err := os.Hostname(); err == nil {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-%s", c.Observability.ServiceName, hostname)
		} else {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-1", c.Observability.ServiceName)
		}
	}

	// Set console output based on log level if not explicitly configured
	if c.App.LogLevel == "debug" && !c.Observability.ConsoleOutput {
		c.Observability.ConsoleOutput = true
	}
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	// Log config file source
	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	// Log environment variables that are set
	envVars := []string{
		"HIREREADY_AI_APIKEY",
		"HIREREADY_AI_PROVIDER",
		"HIREREADY_AI_MODEL",
		"HIREREADY_SERVER_PORT",
		"HIREREADY_SERVER_HOST",
		"HIREREADY_APP_LOGLEVEL",
		"GOOGLE_API_KEY",
		"GEMINI_API_KEY",
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Mask sensitive values
			if strings.Contains(strings.ToLower(envVar), "apikey") || strings.Contains(strings.ToLower(envVar), "key") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	// Log key configuration values (with sensitive data masked)
	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] AI Provider: %s", c.AI.Provider)
	log.Printf("[CONFIG] AI Model: %s", c.AI.Model)
	if c.AI.APIKey != "" {
		log.Println("[CONFIG] AI API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] AI API Key: ***NOT SET***")
	}
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	// Log operation-specific configurations
	log.Println("[CONFIG] === Operation-Specific AI Configurations ===")
	log.Printf("[CONFIG] AnalyzeJob - Provider: %s, Model: %s", c.AI.AnalyzeJob.Provider, c.AI.AnalyzeJob.Model)
	log.Printf("[CONFIG] AnalyzeResume - Provider: %s, Model: %s", c.AI.AnalyzeResume.Provider, c.AI.AnalyzeResume.Model)
	log.Printf("[CONFIG] AnalyzeMatch - Provider: %s, Model: %s", c.AI.AnalyzeMatch.Provider, c.AI.AnalyzeMatch.Model)
	log.Printf("[CONFIG] SuggestATS - Provider: %s, Model: %s", c.AI.SuggestATS.Provider, c.AI.SuggestATS.Model)
	log.Printf("[CONFIG] CoverLetter - Provider: %s, Model: %s", c.AI.CoverLetter.Provider, c.AI.CoverLetter.Model)

	log.Println("[CONFIG] =====================================")
}
