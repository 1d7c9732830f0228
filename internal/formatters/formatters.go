package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"hireready/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchReport", &MatchReportTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchReport", &MatchReportMarkdownFormatter{})
	registry.RegisterFormatter("text", "JobAnalysis", &JobAnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "JobAnalysis", &JobAnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeAnalysis", &ResumeAnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeAnalysis", &ResumeAnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "SuggestATSOutput", &ATSTextFormatter{})
	registry.RegisterFormatter("markdown", "SuggestATSOutput", &ATSMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchReport:
		return "MatchReport"
	case types.JobAnalysis:
		return "JobAnalysis"
	case types.ResumeAnalysis:
		return "ResumeAnalysis"
	case types.SuggestATSOutput:
		return "SuggestATSOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeList(output *strings.Builder, items []string) {
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

// JobAnalysisTextFormatter handles text formatting for job analysis results
type JobAnalysisTextFormatter struct{}

func (jtf *JobAnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobAnalysis)
	if !ok {
		return "", fmt.Errorf("expected JobAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB ANALYSIS ===\n\n")
	if result.IndustryType != "" {
		output.WriteString(fmt.Sprintf("Industry: %s\n", result.IndustryType))
	}
	if result.JobLevel != "" {
		output.WriteString(fmt.Sprintf("Level: %s\n", result.JobLevel))
	}
	if result.YearsExperience != "" {
		output.WriteString(fmt.Sprintf("Experience Required: %s\n", result.YearsExperience))
	}
	output.WriteString("\n")

	if len(result.TechnicalSkills) > 0 {
		output.WriteString("Technical Skills:\n")
		writeList(&output, result.TechnicalSkills)
	}
	if len(result.SoftSkills) > 0 {
		output.WriteString("Soft Skills:\n")
		writeList(&output, result.SoftSkills)
	}
	if len(result.KeyTechnologies) > 0 {
		output.WriteString("Key Technologies:\n")
		writeList(&output, result.KeyTechnologies)
	}
	if len(result.EducationRequirements) > 0 {
		output.WriteString("Education Requirements:\n")
		writeList(&output, result.EducationRequirements)
	}
	if len(result.Certifications) > 0 {
		output.WriteString("Certifications:\n")
		writeList(&output, result.Certifications)
	}
	if len(result.KeyResponsibilities) > 0 {
		output.WriteString("Key Responsibilities:\n")
		writeList(&output, result.KeyResponsibilities)
	}
	if result.CompanyCulture != "" {
		output.WriteString("Company Culture:\n")
		output.WriteString(result.CompanyCulture)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (jtf *JobAnalysisTextFormatter) SupportedType() string {
	return "JobAnalysis"
}

// JobAnalysisMarkdownFormatter handles markdown formatting for job analysis results
type JobAnalysisMarkdownFormatter struct{}

func (jmf *JobAnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobAnalysis)
	if !ok {
		return "", fmt.Errorf("expected JobAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Analysis\n\n")
	if result.IndustryType != "" {
		output.WriteString(fmt.Sprintf("**Industry:** %s\n\n", result.IndustryType))
	}
	if result.JobLevel != "" {
		output.WriteString(fmt.Sprintf("**Level:** %s\n\n", result.JobLevel))
	}
	if result.YearsExperience != "" {
		output.WriteString(fmt.Sprintf("**Experience Required:** %s\n\n", result.YearsExperience))
	}

	if len(result.TechnicalSkills) > 0 {
		output.WriteString("## Technical Skills\n\n")
		writeList(&output, result.TechnicalSkills)
	}
	if len(result.SoftSkills) > 0 {
		output.WriteString("## Soft Skills\n\n")
		writeList(&output, result.SoftSkills)
	}
	if len(result.KeyTechnologies) > 0 {
		output.WriteString("## Key Technologies\n\n")
		writeList(&output, result.KeyTechnologies)
	}
	if len(result.EducationRequirements) > 0 {
		output.WriteString("## Education Requirements\n\n")
		writeList(&output, result.EducationRequirements)
	}
	if len(result.Certifications) > 0 {
		output.WriteString("## Certifications\n\n")
		writeList(&output, result.Certifications)
	}
	if len(result.KeyResponsibilities) > 0 {
		output.WriteString("## Key Responsibilities\n\n")
		writeList(&output, result.KeyResponsibilities)
	}
	if result.CompanyCulture != "" {
		output.WriteString("## Company Culture\n\n")
		output.WriteString(result.CompanyCulture)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (jmf *JobAnalysisMarkdownFormatter) SupportedType() string {
	return "JobAnalysis"
}

// ResumeAnalysisTextFormatter handles text formatting for resume analysis results
type ResumeAnalysisTextFormatter struct{}

func (rtf *ResumeAnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ResumeAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	if result.YearsExperience != "" {
		output.WriteString(fmt.Sprintf("Experience: %s\n\n", result.YearsExperience))
	}

	if len(result.TechnicalSkills) > 0 {
		output.WriteString("Technical Skills:\n")
		writeList(&output, result.TechnicalSkills)
	}
	if len(result.SoftSkills) > 0 {
		output.WriteString("Soft Skills:\n")
		writeList(&output, result.SoftSkills)
	}
	if len(result.Education) > 0 {
		output.WriteString("Education:\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("- %s in %s, %s\n", edu.Degree, edu.Field, edu.Institution))
		}
		output.WriteString("\n")
	}
	if len(result.KeyAchievements) > 0 {
		output.WriteString("Key Achievements:\n")
		writeList(&output, result.KeyAchievements)
	}
	if len(result.CoreCompetencies) > 0 {
		output.WriteString("Core Competencies:\n")
		writeList(&output, result.CoreCompetencies)
	}
	if len(result.IndustryExperience) > 0 {
		output.WriteString("Industry Experience:\n")
		writeList(&output, result.IndustryExperience)
	}
	if len(result.TechnologiesUsed) > 0 {
		output.WriteString("Technologies Used:\n")
		writeList(&output, result.TechnologiesUsed)
	}
	if len(result.Projects) > 0 {
		output.WriteString("Projects:\n")
		writeList(&output, result.Projects)
	}
	if result.LeadershipExperience != "" {
		output.WriteString("Leadership Experience:\n")
		output.WriteString(result.LeadershipExperience)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ResumeAnalysisTextFormatter) SupportedType() string {
	return "ResumeAnalysis"
}

// ResumeAnalysisMarkdownFormatter handles markdown formatting for resume analysis results
type ResumeAnalysisMarkdownFormatter struct{}

func (rmf *ResumeAnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ResumeAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	if result.YearsExperience != "" {
		output.WriteString(fmt.Sprintf("**Experience:** %s\n\n", result.YearsExperience))
	}

	if len(result.TechnicalSkills) > 0 {
		output.WriteString("## Technical Skills\n\n")
		writeList(&output, result.TechnicalSkills)
	}
	if len(result.SoftSkills) > 0 {
		output.WriteString("## Soft Skills\n\n")
		writeList(&output, result.SoftSkills)
	}
	if len(result.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("- %s in %s, %s\n", edu.Degree, edu.Field, edu.Institution))
		}
		output.WriteString("\n")
	}
	if len(result.KeyAchievements) > 0 {
		output.WriteString("## Key Achievements\n\n")
		writeList(&output, result.KeyAchievements)
	}
	if len(result.CoreCompetencies) > 0 {
		output.WriteString("## Core Competencies\n\n")
		writeList(&output, result.CoreCompetencies)
	}
	if len(result.IndustryExperience) > 0 {
		output.WriteString("## Industry Experience\n\n")
		writeList(&output, result.IndustryExperience)
	}
	if len(result.TechnologiesUsed) > 0 {
		output.WriteString("## Technologies Used\n\n")
		writeList(&output, result.TechnologiesUsed)
	}
	if len(result.Projects) > 0 {
		output.WriteString("## Projects\n\n")
		writeList(&output, result.Projects)
	}
	if result.LeadershipExperience != "" {
		output.WriteString("## Leadership Experience\n\n")
		output.WriteString(result.LeadershipExperience)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *ResumeAnalysisMarkdownFormatter) SupportedType() string {
	return "ResumeAnalysis"
}

func writeSkillMatches(output *strings.Builder, matches []types.SkillMatch) {
	for _, skill := range matches {
		output.WriteString(fmt.Sprintf("- %s", skill.SkillName))
		if skill.Suggestion != "" {
			output.WriteString(fmt.Sprintf(" (%s)", skill.Suggestion))
		}
		output.WriteString("\n")
	}
	output.WriteString("\n")
}

func writeATSSuggestionsText(output *strings.Builder, suggestions []types.ATSSuggestion) {
	for i, s := range suggestions {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, s.Section))
		if s.CurrentContent != "" {
			output.WriteString(fmt.Sprintf("   Current: %s\n", s.CurrentContent))
		}
		if s.SuggestedChange != "" {
			output.WriteString(fmt.Sprintf("   Suggestion: %s\n", s.SuggestedChange))
		}
		if len(s.KeywordsToAdd) > 0 {
			output.WriteString(fmt.Sprintf("   Keywords to Add: %s\n", strings.Join(s.KeywordsToAdd, ", ")))
		}
		if s.FormattingSuggestion != "" {
			output.WriteString(fmt.Sprintf("   Formatting: %s\n", s.FormattingSuggestion))
		}
		if s.Reason != "" {
			output.WriteString(fmt.Sprintf("   Why: %s\n", s.Reason))
		}
		output.WriteString("\n")
	}
}

func writeATSSuggestionsMarkdown(output *strings.Builder, suggestions []types.ATSSuggestion) {
	for i, s := range suggestions {
		output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, s.Section))
		if s.CurrentContent != "" {
			output.WriteString(fmt.Sprintf("**Current:** %s\n\n", s.CurrentContent))
		}
		if s.SuggestedChange != "" {
			output.WriteString(fmt.Sprintf("**Suggestion:** %s\n\n", s.SuggestedChange))
		}
		if len(s.KeywordsToAdd) > 0 {
			output.WriteString(fmt.Sprintf("**Keywords to Add:** %s\n\n", strings.Join(s.KeywordsToAdd, ", ")))
		}
		if s.FormattingSuggestion != "" {
			output.WriteString(fmt.Sprintf("**Formatting:** %s\n\n", s.FormattingSuggestion))
		}
		if s.Reason != "" {
			output.WriteString(fmt.Sprintf("**Why:** %s\n\n", s.Reason))
		}
	}
}

// MatchReportTextFormatter handles text formatting for full match reports
type MatchReportTextFormatter struct{}

func (mtf *MatchReportTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== MATCH REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Match: %s\n", result.Summary.OverallMatch))
	output.WriteString(fmt.Sprintf("Matching Skills: %d\n", result.Summary.MatchingSkills))
	output.WriteString(fmt.Sprintf("Missing Skills: %d\n\n", result.Summary.MissingSkills))

	if len(result.Match.MatchingSkills) > 0 {
		output.WriteString("=== MATCHING SKILLS ===\n")
		writeSkillMatches(&output, result.Match.MatchingSkills)
	}
	if len(result.Match.MissingSkills) > 0 {
		output.WriteString("=== MISSING SKILLS ===\n")
		writeSkillMatches(&output, result.Match.MissingSkills)
	}

	if result.Match.SkillsGapAnalysis.TechnicalSkills != "" || result.Match.SkillsGapAnalysis.SoftSkills != "" {
		output.WriteString("=== SKILLS GAP ===\n")
		if result.Match.SkillsGapAnalysis.TechnicalSkills != "" {
			output.WriteString("Technical:\n")
			output.WriteString(result.Match.SkillsGapAnalysis.TechnicalSkills)
			output.WriteString("\n\n")
		}
		if result.Match.SkillsGapAnalysis.SoftSkills != "" {
			output.WriteString("Soft Skills:\n")
			output.WriteString(result.Match.SkillsGapAnalysis.SoftSkills)
			output.WriteString("\n\n")
		}
	}

	if result.Match.ExperienceMatchAnalysis != "" {
		output.WriteString("=== EXPERIENCE MATCH ===\n")
		output.WriteString(result.Match.ExperienceMatchAnalysis)
		output.WriteString("\n\n")
	}
	if result.Match.EducationMatchAnalysis != "" {
		output.WriteString("=== EDUCATION MATCH ===\n")
		output.WriteString(result.Match.EducationMatchAnalysis)
		output.WriteString("\n\n")
	}
	if result.Match.KeyStrengths != "" {
		output.WriteString("=== KEY STRENGTHS ===\n")
		output.WriteString(result.Match.KeyStrengths)
		output.WriteString("\n\n")
	}
	if result.Match.AreasOfImprovement != "" {
		output.WriteString("=== AREAS OF IMPROVEMENT ===\n")
		output.WriteString(result.Match.AreasOfImprovement)
		output.WriteString("\n\n")
	}

	if len(result.Match.RecommendationsForImprove) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, rec := range result.Match.RecommendationsForImprove {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec.Recommendation))
			if rec.Section != "" {
				output.WriteString(fmt.Sprintf("   Section: %s\n", rec.Section))
			}
			if rec.Guidance != "" {
				output.WriteString(fmt.Sprintf("   Guidance: %s\n", rec.Guidance))
			}
		}
		output.WriteString("\n")
	}

	if len(result.Match.ATSOptimizationSuggestions) > 0 {
		output.WriteString("=== ATS SUGGESTIONS ===\n")
		writeATSSuggestionsText(&output, result.Match.ATSOptimizationSuggestions)
	}

	return output.String(), nil
}

func (mtf *MatchReportTextFormatter) SupportedType() string {
	return "MatchReport"
}

// MatchReportMarkdownFormatter handles markdown formatting for full match reports
type MatchReportMarkdownFormatter struct{}

func (mmf *MatchReportMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Match Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Match:** %s\n\n", result.Summary.OverallMatch))
	output.WriteString(fmt.Sprintf("**Matching Skills:** %d\n\n", result.Summary.MatchingSkills))
	output.WriteString(fmt.Sprintf("**Missing Skills:** %d\n\n", result.Summary.MissingSkills))

	if len(result.Match.MatchingSkills) > 0 {
		output.WriteString("## Matching Skills\n\n")
		writeSkillMatches(&output, result.Match.MatchingSkills)
	}
	if len(result.Match.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		writeSkillMatches(&output, result.Match.MissingSkills)
	}

	if result.Match.SkillsGapAnalysis.TechnicalSkills != "" {
		output.WriteString("## Technical Skills Gap\n\n")
		output.WriteString(result.Match.SkillsGapAnalysis.TechnicalSkills)
		output.WriteString("\n\n")
	}
	if result.Match.SkillsGapAnalysis.SoftSkills != "" {
		output.WriteString("## Soft Skills Gap\n\n")
		output.WriteString(result.Match.SkillsGapAnalysis.SoftSkills)
		output.WriteString("\n\n")
	}
	if result.Match.ExperienceMatchAnalysis != "" {
		output.WriteString("## Experience Match\n\n")
		output.WriteString(result.Match.ExperienceMatchAnalysis)
		output.WriteString("\n\n")
	}
	if result.Match.EducationMatchAnalysis != "" {
		output.WriteString("## Education Match\n\n")
		output.WriteString(result.Match.EducationMatchAnalysis)
		output.WriteString("\n\n")
	}
	if result.Match.KeyStrengths != "" {
		output.WriteString("## Key Strengths\n\n")
		output.WriteString(result.Match.KeyStrengths)
		output.WriteString("\n\n")
	}
	if result.Match.AreasOfImprovement != "" {
		output.WriteString("## Areas of Improvement\n\n")
		output.WriteString(result.Match.AreasOfImprovement)
		output.WriteString("\n\n")
	}

	if len(result.Match.RecommendationsForImprove) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.Match.RecommendationsForImprove {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, rec.Recommendation))
			if rec.Section != "" {
				output.WriteString(fmt.Sprintf("**Section:** %s\n\n", rec.Section))
			}
			if rec.Guidance != "" {
				output.WriteString(fmt.Sprintf("**Guidance:** %s\n\n", rec.Guidance))
			}
		}
	}

	if len(result.Match.ATSOptimizationSuggestions) > 0 {
		output.WriteString("## ATS Suggestions\n\n")
		writeATSSuggestionsMarkdown(&output, result.Match.ATSOptimizationSuggestions)
	}

	return output.String(), nil
}

func (mmf *MatchReportMarkdownFormatter) SupportedType() string {
	return "MatchReport"
}

// ATSTextFormatter handles text formatting for standalone ATS suggestions
type ATSTextFormatter struct{}

func (atf *ATSTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.SuggestATSOutput)
	if !ok {
		return "", fmt.Errorf("expected SuggestATSOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS OPTIMIZATION SUGGESTIONS ===\n\n")
	if len(result.ATSOptimizationSuggestions) == 0 {
		output.WriteString("No suggestions available.\n")
		return output.String(), nil
	}
	writeATSSuggestionsText(&output, result.ATSOptimizationSuggestions)

	return output.String(), nil
}

func (atf *ATSTextFormatter) SupportedType() string {
	return "SuggestATSOutput"
}

// ATSMarkdownFormatter handles markdown formatting for standalone ATS suggestions
type ATSMarkdownFormatter struct{}

func (amf *ATSMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.SuggestATSOutput)
	if !ok {
		return "", fmt.Errorf("expected SuggestATSOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Optimization Suggestions\n\n")
	if len(result.ATSOptimizationSuggestions) == 0 {
		output.WriteString("No suggestions available.\n")
		return output.String(), nil
	}
	writeATSSuggestionsMarkdown(&output, result.ATSOptimizationSuggestions)

	return output.String(), nil
}

func (amf *ATSMarkdownFormatter) SupportedType() string {
	return "SuggestATSOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
