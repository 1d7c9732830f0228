package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			APIKey:      "test-api-key",
			Temperature: 0.1,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      10 * 1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectError   bool
		expectedError string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:          "missing api key",
			mutate:        func(c *Config) { c.AI.APIKey = "" },
			expectError:   true,
			expectedError: "AI API key is required",
		},
		{
			name:          "non-positive timeout",
			mutate:        func(c *Config) { c.AI.Timeout = 0 },
			expectError:   true,
			expectedError: "AI timeout must be positive",
		},
		{
			name:          "missing server port",
			mutate:        func(c *Config) { c.Server.Port = "" },
			expectError:   true,
			expectedError: "server port is required",
		},
		{
			name:          "non-positive max file size",
			mutate:        func(c *Config) { c.App.MaxFileSize = 0 },
			expectError:   true,
			expectedError: "max file size must be positive",
		},
		{
			name:          "default format not in supported formats",
			mutate:        func(c *Config) { c.App.DefaultFormat = "xml" },
			expectError:   true,
			expectedError: "invalid default format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("Expected error containing %q, got %q", tt.expectedError, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestOperationDefaults(t *testing.T) {
	t.Run("empty operation inherits global values", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.MaxRetries = 2
		cfg.AI.UseSystemPrompts = true

		opCfg := cfg.GetAnalyzeJobConfig()
		if opCfg.Provider != "gemini" {
			t.Errorf("Expected inherited provider 'gemini', got %q", opCfg.Provider)
		}
		if opCfg.Model != "gemini-2.0-flash" {
			t.Errorf("Expected inherited model, got %q", opCfg.Model)
		}
		if opCfg.APIKey != "test-api-key" {
			t.Errorf("Expected inherited API key, got %q", opCfg.APIKey)
		}
		if opCfg.Timeout == nil || *opCfg.Timeout != 60*time.Second {
			t.Errorf("Expected inherited timeout, got %v", opCfg.Timeout)
		}
		if opCfg.MaxRetries == nil || *opCfg.MaxRetries != 2 {
			t.Errorf("Expected inherited max retries, got %v", opCfg.MaxRetries)
		}
		if opCfg.Temperature == nil || *opCfg.Temperature != 0.1 {
			t.Errorf("Expected inherited temperature, got %v", opCfg.Temperature)
		}
		if opCfg.UseSystemPrompts == nil || !*opCfg.UseSystemPrompts {
			t.Errorf("Expected inherited useSystemPrompts, got %v", opCfg.UseSystemPrompts)
		}
	})

	t.Run("operation overrides win over global values", func(t *testing.T) {
		cfg := validConfig()
		opTimeout := 90 * time.Second
		opTemp := float32(0.7)
		cfg.AI.CoverLetter = OperationAIConfig{
			Model:       "gemini-2.5-pro",
			Timeout:     &opTimeout,
			Temperature: &opTemp,
		}

		opCfg := cfg.GetCoverLetterConfig()
		if opCfg.Model != "gemini-2.5-pro" {
			t.Errorf("Expected operation model override, got %q", opCfg.Model)
		}
		if opCfg.Timeout == nil || *opCfg.Timeout != 90*time.Second {
			t.Errorf("Expected operation timeout override, got %v", opCfg.Timeout)
		}
		if opCfg.Temperature == nil || *opCfg.Temperature != 0.7 {
			t.Errorf("Expected operation temperature override, got %v", opCfg.Temperature)
		}
		if opCfg.APIKey != "test-api-key" {
			t.Errorf("Expected inherited API key alongside overrides, got %q", opCfg.APIKey)
		}
	})

	t.Run("custom prompts fall back to global prompts", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.CustomPrompts.SystemPrompts.AnalyzeMatch = "global system prompt"
		cfg.AI.CustomPrompts.UserPrompts.AnalyzeMatch = "global user prompt %s %s"

		opCfg := cfg.GetAnalyzeMatchConfig()
		if opCfg.CustomPrompts.SystemPrompts.AnalyzeMatch != "global system prompt" {
			t.Errorf("Expected global system prompt fallback, got %q", opCfg.CustomPrompts.SystemPrompts.AnalyzeMatch)
		}
		if opCfg.CustomPrompts.UserPrompts.AnalyzeMatch != "global user prompt %s %s" {
			t.Errorf("Expected global user prompt fallback, got %q", opCfg.CustomPrompts.UserPrompts.AnalyzeMatch)
		}
	})

	t.Run("operation prompts win over global prompts", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.CustomPrompts.SystemPrompts.SuggestATS = "global prompt"
		cfg.AI.SuggestATS.CustomPrompts.SystemPrompts.SuggestATS = "operation prompt"

		opCfg := cfg.GetSuggestATSConfig()
		if opCfg.CustomPrompts.SystemPrompts.SuggestATS != "operation prompt" {
			t.Errorf("Expected operation prompt to win, got %q", opCfg.CustomPrompts.SystemPrompts.SuggestATS)
		}
	})
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	t.Run("operation temperatures", func(t *testing.T) {
		tests := []struct {
			key      string
			expected float64
		}{
			{key: "ai.analyzeJob.temperature", expected: 0.1},
			{key: "ai.analyzeResume.temperature", expected: 0.1},
			{key: "ai.analyzeMatch.temperature", expected: 0.1},
			{key: "ai.suggestAts.temperature", expected: 0.2},
			{key: "ai.coverLetter.temperature", expected: 0.7},
		}
		for _, tt := range tests {
			if got := v.GetFloat64(tt.key); got != tt.expected {
				t.Errorf("Expected %s = %v, got %v", tt.key, tt.expected, got)
			}
		}
	})

	t.Run("retries default to a single attempt", func(t *testing.T) {
		if got := v.GetInt("ai.maxRetries"); got != 0 {
			t.Errorf("Expected ai.maxRetries = 0, got %d", got)
		}
	})

	t.Run("app defaults", func(t *testing.T) {
		if got := v.GetString("app.defaultFormat"); got != "json" {
			t.Errorf("Expected default format 'json', got %q", got)
		}
		if got := v.GetInt64("app.maxFileSize"); got != 10*1024*1024 {
			t.Errorf("Expected max file size 10MB, got %d", got)
		}
		if got := v.GetString("server.port"); got != "8080" {
			t.Errorf("Expected server port '8080', got %q", got)
		}
	})

	t.Run("circuit breakers enabled per operation", func(t *testing.T) {
		for _, op := range []string{"analyzeJob", "analyzeResume", "analyzeMatch", "suggestAts", "coverLetter"} {
			if !v.GetBool("ai." + op + ".circuitBreaker.enabled") {
				t.Errorf("Expected circuit breaker enabled for %s", op)
			}
		}
	})
}

func TestApplyFallbacks(t *testing.T) {
	t.Run("google api key used when config key empty", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "google-key")
		t.Setenv("GEMINI_API_KEY", "")

		cfg := validConfig()
		cfg.AI.APIKey = ""
		cfg.applyFallbacks()
		if cfg.AI.APIKey != "google-key" {
			t.Errorf("Expected GOOGLE_API_KEY fallback, got %q", cfg.AI.APIKey)
		}
	})

	t.Run("gemini api key used when google key absent", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "gemini-key")

		cfg := validConfig()
		cfg.AI.APIKey = ""
		cfg.applyFallbacks()
		if cfg.AI.APIKey != "gemini-key" {
			t.Errorf("Expected GEMINI_API_KEY fallback, got %q", cfg.AI.APIKey)
		}
	})

	t.Run("configured key wins over environment", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "google-key")

		cfg := validConfig()
		cfg.applyFallbacks()
		if cfg.AI.APIKey != "test-api-key" {
			t.Errorf("Expected configured key kept, got %q", cfg.AI.APIKey)
		}
	})

	t.Run("server api keys parsed from environment", func(t *testing.T) {
		t.Setenv("HIREREADY_SERVER_APIKEYS", "key-one, key-two ,key-three")

		cfg := validConfig()
		cfg.applyFallbacks()
		if len(cfg.Server.APIKeys) != 3 {
			t.Fatalf("Expected 3 API keys, got %d", len(cfg.Server.APIKeys))
		}
		if cfg.Server.APIKeys[1] != "key-two" {
			t.Errorf("Expected trimmed key 'key-two', got %q", cfg.Server.APIKeys[1])
		}
	})
}
