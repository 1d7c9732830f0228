package ai

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"hireready/internal/config"
	hirereadyErrors "hireready/internal/errors"

	"google.golang.org/genai"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each pipeline operation gets its own circuit breaker so a flaky
	// match model cannot trip the job analysis breaker

	analyzeJobConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	analyzeMatchConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.7,
		},
	}

	coverLetterConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-lite",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      4,
			Interval:         90 * time.Second,
			Timeout:          75 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.5,
		},
	}

	logger := hirereadyErrors.NewLogger(slog.LevelError)

	analyzeJobCB := NewAICircuitBreaker("AnalyzeJob", analyzeJobConfig, logger)
	analyzeMatchCB := NewAICircuitBreaker("AnalyzeMatch", analyzeMatchConfig, logger)
	coverLetterCB := NewAICircuitBreaker("CoverLetter", coverLetterConfig, logger)

	tests := []struct {
		name         string
		cb           *AICircuitBreaker
		expectedName string
	}{
		{name: "AnalyzeJobCircuitBreaker", cb: analyzeJobCB, expectedName: "AI-AnalyzeJob"},
		{name: "AnalyzeMatchCircuitBreaker", cb: analyzeMatchCB, expectedName: "AI-AnalyzeMatch"},
		{name: "CoverLetterCircuitBreaker", cb: coverLetterCB, expectedName: "AI-CoverLetter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := tt.cb.GetStats()

			name, ok := stats["name"].(string)
			if !ok {
				t.Fatal("Circuit breaker name not found")
			}
			if name != tt.expectedName {
				t.Errorf("Expected circuit breaker name '%s', got '%s'", tt.expectedName, name)
			}

			state, ok := stats["state"].(string)
			if !ok {
				t.Fatal("Circuit breaker state not found")
			}
			if state != "closed" {
				t.Errorf("Expected initial state 'closed', got '%s'", state)
			}

			enabled, ok := stats["enabled"].(bool)
			if !ok || !enabled {
				t.Error("Expected circuit breaker to report enabled")
			}

			if !tt.cb.IsHealthy() {
				t.Error("Expected new circuit breaker to be healthy")
			}
		})
	}
}

func TestDisabledCircuitBreaker(t *testing.T) {
	cfg := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	logger := hirereadyErrors.NewLogger(slog.LevelError)
	cb := NewAICircuitBreaker("AnalyzeResume", cfg, logger)
	if cb != nil {
		t.Fatal("Expected nil circuit breaker when disabled")
	}

	// Nil breakers pass calls straight through
	called := false
	result, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return &genai.GenerateContentResponse{}, nil
	})
	if err != nil {
		t.Errorf("Expected no error but got: %v", err)
	}
	if !called {
		t.Error("Expected function to be executed")
	}
	if result == nil {
		t.Error("Expected result to be passed through")
	}

	if !cb.IsHealthy() {
		t.Error("Expected disabled circuit breaker to report healthy")
	}

	stats := cb.GetStats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Error("Expected disabled circuit breaker stats to report enabled=false")
	}
}

func TestCircuitBreakerExecute(t *testing.T) {
	logger := hirereadyErrors.NewLogger(slog.LevelError)
	cfg := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	t.Run("successful call passes result through", func(t *testing.T) {
		cb := NewAICircuitBreaker("SuggestATS", cfg, logger)
		want := &genai.GenerateContentResponse{}
		result, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
			return want, nil
		})
		if err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if result != want {
			t.Error("Expected the function result to be returned")
		}
	})

	t.Run("failed call passes error through", func(t *testing.T) {
		cb := NewAICircuitBreaker("SuggestATS", cfg, logger)
		wantErr := errors.New("model unavailable")
		_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("Expected original error, got: %v", err)
		}
		// A single failure below MinRequests must not open the breaker
		if !cb.IsHealthy() {
			t.Error("Expected breaker to stay closed after one failure")
		}
	})

	t.Run("repeated failures open the breaker", func(t *testing.T) {
		cb := NewAICircuitBreaker("SuggestATS", cfg, logger)
		wantErr := errors.New("model unavailable")
		for range 3 {
			_, _ = cb.Execute(func() (*genai.GenerateContentResponse, error) {
				return nil, wantErr
			})
		}
		if cb.IsHealthy() {
			t.Error("Expected breaker to open after repeated failures")
		}
		stats := cb.GetStats()
		if state, _ := stats["state"].(string); state != "open" {
			t.Errorf("Expected state 'open', got '%s'", state)
		}
	})
}

func TestModelCircuitBreaker(t *testing.T) {
	cfg := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	logger := hirereadyErrors.NewLogger(slog.LevelError)
	cb := NewModelCircuitBreaker("AnalyzeJob", cfg, logger)
	if cb == nil {
		t.Fatal("Expected model circuit breaker to be created")
	}

	stats := cb.GetModelStats()
	if name, _ := stats["name"].(string); name != "AI-Model-AnalyzeJob" {
		t.Errorf("Expected name 'AI-Model-AnalyzeJob', got '%s'", name)
	}
	if !cb.IsModelHealthy() {
		t.Error("Expected new model circuit breaker to be healthy")
	}

	model, err := cb.ExecuteModel(func() (*genai.Model, error) {
		return &genai.Model{Name: "gemini-2.0-flash"}, nil
	})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if model == nil || model.Name != "gemini-2.0-flash" {
		t.Errorf("Expected model to be passed through, got %+v", model)
	}
}
