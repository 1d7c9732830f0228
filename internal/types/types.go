package types

// JobAnalysis is the structured summary extracted from a job description.
// Every field is optional: the model may omit any key, and consumers must
// tolerate zero values.
type JobAnalysis struct {
	TechnicalSkills       []string `json:"technical_skills,omitempty"`
	SoftSkills            []string `json:"soft_skills,omitempty"`
	YearsExperience       string   `json:"years_experience,omitempty"`
	EducationRequirements []string `json:"education_requirements,omitempty"`
	KeyResponsibilities   []string `json:"key_responsibilities,omitempty"`
	CompanyCulture        string   `json:"company_culture,omitempty"`
	Certifications        []string `json:"certifications,omitempty"`
	IndustryType          string   `json:"industry_type,omitempty"`
	JobLevel              string   `json:"job_level,omitempty"`
	KeyTechnologies       []string `json:"key_technologies,omitempty"`
}

// IsEmpty reports whether no field was populated
func (j JobAnalysis) IsEmpty() bool {
	return len(j.TechnicalSkills) == 0 &&
		len(j.SoftSkills) == 0 &&
		j.YearsExperience == "" &&
		len(j.EducationRequirements) == 0 &&
		len(j.KeyResponsibilities) == 0 &&
		j.CompanyCulture == "" &&
		len(j.Certifications) == 0 &&
		j.IndustryType == "" &&
		j.JobLevel == "" &&
		len(j.KeyTechnologies) == 0
}

// Education represents one education entry on a resume
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// ResumeAnalysis is the structured summary extracted from resume text
type ResumeAnalysis struct {
	TechnicalSkills      []string    `json:"technical_skills,omitempty"`
	SoftSkills           []string    `json:"soft_skills,omitempty"`
	YearsExperience      string      `json:"years_experience,omitempty"`
	Education            []Education `json:"education,omitempty"`
	KeyAchievements      []string    `json:"key_achievements,omitempty"`
	CoreCompetencies     []string    `json:"core_competencies,omitempty"`
	IndustryExperience   []string    `json:"industry_experience,omitempty"`
	LeadershipExperience string      `json:"leadership_experience,omitempty"`
	TechnologiesUsed     []string    `json:"technologies_used,omitempty"`
	Projects             []string    `json:"projects,omitempty"`
}

// IsEmpty reports whether no field was populated
func (r ResumeAnalysis) IsEmpty() bool {
	return len(r.TechnicalSkills) == 0 &&
		len(r.SoftSkills) == 0 &&
		r.YearsExperience == "" &&
		len(r.Education) == 0 &&
		len(r.KeyAchievements) == 0 &&
		len(r.CoreCompetencies) == 0 &&
		len(r.IndustryExperience) == 0 &&
		r.LeadershipExperience == "" &&
		len(r.TechnologiesUsed) == 0 &&
		len(r.Projects) == 0
}

// SkillMatch records whether a single job-required skill was found on the
// resume, and for missing skills, how to gain or present it
type SkillMatch struct {
	SkillName  string `json:"skill_name,omitempty"`
	IsMatch    bool   `json:"is_match"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SkillsGapAnalysis describes the gap between required and present skills
type SkillsGapAnalysis struct {
	TechnicalSkills string `json:"technical_skills,omitempty"`
	SoftSkills      string `json:"soft_skills,omitempty"`
}

// ImprovementRecommendation is one actionable resume improvement
type ImprovementRecommendation struct {
	Recommendation string `json:"recommendation,omitempty"`
	Section        string `json:"section,omitempty"`
	Guidance       string `json:"guidance,omitempty"`
}

// ATSSuggestion is one ATS-focused rewrite suggestion for a resume section
type ATSSuggestion struct {
	Section              string   `json:"section,omitempty"`
	CurrentContent       string   `json:"current_content,omitempty"`
	SuggestedChange      string   `json:"suggested_change,omitempty"`
	KeywordsToAdd        []string `json:"keywords_to_add,omitempty"`
	FormattingSuggestion string   `json:"formatting_suggestion,omitempty"`
	Reason               string   `json:"reason,omitempty"`
}

// MatchAnalysis is the comparison of a JobAnalysis against a ResumeAnalysis
type MatchAnalysis struct {
	OverallMatchPercentage     string                      `json:"overall_match_percentage,omitempty"`
	MatchingSkills             []SkillMatch                `json:"matching_skills,omitempty"`
	MissingSkills              []SkillMatch                `json:"missing_skills,omitempty"`
	SkillsGapAnalysis          SkillsGapAnalysis           `json:"skills_gap_analysis,omitempty"`
	ExperienceMatchAnalysis    string                      `json:"experience_match_analysis,omitempty"`
	EducationMatchAnalysis     string                      `json:"education_match_analysis,omitempty"`
	RecommendationsForImprove  []ImprovementRecommendation `json:"recommendations_for_improvement,omitempty"`
	ATSOptimizationSuggestions []ATSSuggestion             `json:"ats_optimization_suggestions,omitempty"`
	KeyStrengths               string                      `json:"key_strengths,omitempty"`
	AreasOfImprovement         string                      `json:"areas_of_improvement,omitempty"`
}

// MatchSummary is the headline view of a MatchAnalysis used by formatters
// and API responses
type MatchSummary struct {
	OverallMatch   string `json:"overallMatch"`
	MatchingSkills int    `json:"matchingSkills"`
	MissingSkills  int    `json:"missingSkills"`
}

// Summary derives the headline metrics. An absent percentage reads "0%".
func (m MatchAnalysis) Summary() MatchSummary {
	overall := m.OverallMatchPercentage
	if overall == "" {
		overall = "0%"
	}
	return MatchSummary{
		OverallMatch:   overall,
		MatchingSkills: len(m.MatchingSkills),
		MissingSkills:  len(m.MissingSkills),
	}
}

// AnalyzeJobInput represents the input for analyzing a job description
type AnalyzeJobInput struct {
	JobDescription string `json:"jobDescription"`
}

// AnalyzeResumeInput represents the input for analyzing extracted resume text
type AnalyzeResumeInput struct {
	ResumeText string `json:"resumeText"`
}

// AnalyzeMatchInput carries both prior analyses into the match step
type AnalyzeMatchInput struct {
	Job    JobAnalysis    `json:"job"`
	Resume ResumeAnalysis `json:"resume"`
}

// SuggestATSInput represents the input for standalone ATS suggestions
type SuggestATSInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// SuggestATSOutput wraps the suggestion list returned by the model
type SuggestATSOutput struct {
	ATSOptimizationSuggestions []ATSSuggestion `json:"ats_optimization_suggestions,omitempty"`
}

// MatchReport is the combined result of a full pipeline run
type MatchReport struct {
	Job     JobAnalysis    `json:"job"`
	Resume  ResumeAnalysis `json:"resume"`
	Match   MatchAnalysis  `json:"match"`
	Summary MatchSummary   `json:"summary"`
}

// CoverLetterInput represents the input for cover letter generation
type CoverLetterInput struct {
	Job            *JobAnalysis    `json:"job,omitempty"`
	Resume         *ResumeAnalysis `json:"resume,omitempty"`
	Match          *MatchAnalysis  `json:"match,omitempty"`
	ResumeText     string          `json:"resumeText,omitempty"`
	JobDescription string          `json:"jobDescription,omitempty"`
	CompanyName    string          `json:"companyName,omitempty"`
	PositionTitle  string          `json:"positionTitle,omitempty"`
	Tone           string          `json:"tone,omitempty"`
}
