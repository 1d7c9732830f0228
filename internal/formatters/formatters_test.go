package formatters

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"hireready/internal/types"
)

func sampleReport() types.MatchReport {
	match := types.MatchAnalysis{
		OverallMatchPercentage: "75%",
		MatchingSkills: []types.SkillMatch{
			{SkillName: "Go", IsMatch: true},
		},
		MissingSkills: []types.SkillMatch{
			{SkillName: "Kubernetes", Suggestion: "Take a CKA course"},
		},
		ExperienceMatchAnalysis: "Six years against a five year requirement.",
		KeyStrengths:            "Strong backend background.",
		ATSOptimizationSuggestions: []types.ATSSuggestion{
			{
				Section:         "Skills",
				CurrentContent:  "Go, Python",
				SuggestedChange: "Add Kubernetes",
				KeywordsToAdd:   []string{"Kubernetes", "Terraform"},
				Reason:          "Keywords missing from the skills section",
			},
		},
	}
	return types.MatchReport{
		Job:     types.JobAnalysis{TechnicalSkills: []string{"Go", "Kubernetes"}},
		Resume:  types.ResumeAnalysis{TechnicalSkills: []string{"Go", "Python"}},
		Match:   match,
		Summary: match.Summary(),
	}
}

func TestFormatMatchReportText(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleReport(), "text")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	expectedFragments := []string{
		"=== MATCH REPORT ===",
		"Overall Match: 75%",
		"Matching Skills: 1",
		"Missing Skills: 1",
		"=== MATCHING SKILLS ===",
		"=== MISSING SKILLS ===",
		"Take a CKA course",
		"=== EXPERIENCE MATCH ===",
		"=== KEY STRENGTHS ===",
		"=== ATS SUGGESTIONS ===",
		"Keywords to Add: Kubernetes, Terraform",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("Expected output to contain %q", fragment)
		}
	}

	// Sections without data stay out of the output
	if strings.Contains(output, "=== EDUCATION MATCH ===") {
		t.Error("Expected empty education section to be omitted")
	}
}

func TestFormatMatchReportMarkdown(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleReport(), "markdown")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if !strings.Contains(output, "# Match Report") {
		t.Error("Expected markdown title")
	}
	if !strings.Contains(output, "**Overall Match:** 75%") {
		t.Error("Expected bold overall match")
	}
}

func TestFormatJSONFallback(t *testing.T) {
	// Types without a dedicated formatter fall back to JSON-for-any
	report := sampleReport()
	output, err := GlobalRegistry.Format(report, "json")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	var decoded types.MatchReport
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Expected valid JSON output, got error: %v", err)
	}
	if decoded.Summary.OverallMatch != "75%" {
		t.Errorf("Expected round-tripped summary, got %+v", decoded.Summary)
	}
}

func TestFormatUnsupportedFormat(t *testing.T) {
	_, err := GlobalRegistry.Format(sampleReport(), "xml")
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if !strings.Contains(err.Error(), "no formatter found for format 'xml'") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestFormatAnalysisTypes(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		format   string
		expected string
	}{
		{
			name:     "job analysis text",
			data:     types.JobAnalysis{TechnicalSkills: []string{"Go"}, JobLevel: "senior"},
			format:   "text",
			expected: "=== JOB ANALYSIS ===",
		},
		{
			name:     "resume analysis text",
			data:     types.ResumeAnalysis{TechnicalSkills: []string{"Go"}},
			format:   "text",
			expected: "=== RESUME ANALYSIS ===",
		},
		{
			name: "ats suggestions text",
			data: types.SuggestATSOutput{ATSOptimizationSuggestions: []types.ATSSuggestion{
				{Section: "Skills", SuggestedChange: "Add Kubernetes"},
			}},
			format:   "text",
			expected: "1. Skills",
		},
		{
			name:     "job analysis markdown",
			data:     types.JobAnalysis{TechnicalSkills: []string{"Go"}},
			format:   "markdown",
			expected: "# Job Analysis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := GlobalRegistry.Format(tt.data, tt.format)
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := NewFormatterRegistry().GetSupportedFormats()
	sort.Strings(formats)

	expected := []string{"json", "markdown", "text"}
	if len(formats) != len(expected) {
		t.Fatalf("Expected %d formats, got %d: %v", len(expected), len(formats), formats)
	}
	for i, format := range expected {
		if formats[i] != format {
			t.Errorf("Expected format %q at position %d, got %q", format, i, formats[i])
		}
	}
}
