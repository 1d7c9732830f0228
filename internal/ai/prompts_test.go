package ai

import (
	"strings"
	"testing"

	"hireready/internal/types"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "shorter than limit unchanged",
			input:    "short text",
			max:      100,
			expected: "short text",
		},
		{
			name:     "exactly at limit unchanged",
			input:    "abcde",
			max:      5,
			expected: "abcde",
		},
		{
			name:     "longer than limit cut",
			input:    "abcdefghij",
			max:      5,
			expected: "abcde",
		},
		{
			name:     "empty input",
			input:    "",
			max:      10,
			expected: "",
		},
		{
			name:     "zero limit",
			input:    "anything",
			max:      0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestTruncationLimits(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "job description", limit: maxJobDescriptionChars, expected: 3000},
		{name: "resume text", limit: maxResumeTextChars, expected: 4000},
		{name: "analysis json", limit: maxAnalysisJSONChars, expected: 2000},
		{name: "ats job description", limit: maxATSJobDescriptionChars, expected: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.limit != tt.expected {
				t.Errorf("Expected limit %d, got %d", tt.expected, tt.limit)
			}
			long := strings.Repeat("x", tt.limit+500)
			if got := len(truncate(long, tt.limit)); got != tt.limit {
				t.Errorf("Expected truncated length %d, got %d", tt.limit, got)
			}
		})
	}
}

func TestAnalysisJSON(t *testing.T) {
	t.Run("serializes indented", func(t *testing.T) {
		result := analysisJSON(types.JobAnalysis{JobLevel: "senior"})
		if !strings.Contains(result, `"job_level": "senior"`) {
			t.Errorf("Expected serialized job level, got %q", result)
		}
		if !strings.HasPrefix(result, "{\n") {
			t.Errorf("Expected indented JSON object, got %q", result)
		}
	})

	t.Run("unserializable value falls back to empty object", func(t *testing.T) {
		if result := analysisJSON(make(chan int)); result != "{}" {
			t.Errorf("Expected '{}', got %q", result)
		}
	})
}

func TestDefaultPrompts(t *testing.T) {
	systemPrompts := map[string]string{
		"AnalyzeJob":      DefaultSystemPrompts.AnalyzeJob,
		"AnalyzeResume":   DefaultSystemPrompts.AnalyzeResume,
		"AnalyzeMatch":    DefaultSystemPrompts.AnalyzeMatch,
		"SuggestATS":      DefaultSystemPrompts.SuggestATS,
		"CoverLetter":     DefaultSystemPrompts.CoverLetter,
		"CoverLetterTips": DefaultSystemPrompts.CoverLetterTips,
	}
	for name, prompt := range systemPrompts {
		if prompt == "" {
			t.Errorf("Default system prompt %s is empty", name)
		}
	}

	// Templates that embed dynamic content must carry a substitution slot
	userPrompts := map[string]string{
		"AnalyzeJob":      DefaultUserPrompts.AnalyzeJob,
		"AnalyzeResume":   DefaultUserPrompts.AnalyzeResume,
		"AnalyzeMatch":    DefaultUserPrompts.AnalyzeMatch,
		"SuggestATS":      DefaultUserPrompts.SuggestATS,
		"CoverLetter":     DefaultUserPrompts.CoverLetter,
		"CoverLetterRaw":  DefaultUserPrompts.CoverLetterRaw,
		"CoverLetterTips": DefaultUserPrompts.CoverLetterTips,
	}
	for name, prompt := range userPrompts {
		if !strings.Contains(prompt, "%s") {
			t.Errorf("Default user prompt %s has no substitution placeholder", name)
		}
	}
}
