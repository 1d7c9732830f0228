package types

import "testing"

func TestJobAnalysisIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		analysis JobAnalysis
		expected bool
	}{
		{
			name:     "zero value is empty",
			analysis: JobAnalysis{},
			expected: true,
		},
		{
			name:     "technical skills populated",
			analysis: JobAnalysis{TechnicalSkills: []string{"Go"}},
			expected: false,
		},
		{
			name:     "only scalar field populated",
			analysis: JobAnalysis{JobLevel: "senior"},
			expected: false,
		},
		{
			name:     "only culture populated",
			analysis: JobAnalysis{CompanyCulture: "collaborative"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.analysis.IsEmpty(); got != tt.expected {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResumeAnalysisIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		analysis ResumeAnalysis
		expected bool
	}{
		{
			name:     "zero value is empty",
			analysis: ResumeAnalysis{},
			expected: true,
		},
		{
			name:     "education populated",
			analysis: ResumeAnalysis{Education: []Education{{Degree: "BS", Field: "Computer Science"}}},
			expected: false,
		},
		{
			name:     "only years of experience populated",
			analysis: ResumeAnalysis{YearsExperience: "6 years"},
			expected: false,
		},
		{
			name:     "only projects populated",
			analysis: ResumeAnalysis{Projects: []string{"CLI tool"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.analysis.IsEmpty(); got != tt.expected {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMatchAnalysisSummary(t *testing.T) {
	tests := []struct {
		name     string
		analysis MatchAnalysis
		expected MatchSummary
	}{
		{
			name:     "empty analysis reads zero percent",
			analysis: MatchAnalysis{},
			expected: MatchSummary{OverallMatch: "0%", MatchingSkills: 0, MissingSkills: 0},
		},
		{
			name: "populated analysis",
			analysis: MatchAnalysis{
				OverallMatchPercentage: "85%",
				MatchingSkills: []SkillMatch{
					{SkillName: "Go", IsMatch: true},
					{SkillName: "Python", IsMatch: true},
				},
				MissingSkills: []SkillMatch{
					{SkillName: "Kubernetes", Suggestion: "Take a CKA course"},
				},
			},
			expected: MatchSummary{OverallMatch: "85%", MatchingSkills: 2, MissingSkills: 1},
		},
		{
			name: "non-numeric percentage passed through",
			analysis: MatchAnalysis{
				OverallMatchPercentage: "roughly 70%",
			},
			expected: MatchSummary{OverallMatch: "roughly 70%", MatchingSkills: 0, MissingSkills: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.analysis.Summary()
			if got != tt.expected {
				t.Errorf("Summary() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
