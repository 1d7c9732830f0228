package ai

import "encoding/json"

// Input size caps applied before template substitution. Long documents are
// analyzed on a prefix only; the cutoffs trade completeness for context
// window cost.
const (
	maxJobDescriptionChars    = 3000
	maxResumeTextChars        = 4000
	maxAnalysisJSONChars      = 2000
	maxATSJobDescriptionChars = 2000
)

// truncate returns at most max bytes of s
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// analysisJSON serializes an analysis entity for embedding into a prompt
func analysisJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeJob      string
	AnalyzeResume   string
	AnalyzeMatch    string
	SuggestATS      string
	CoverLetter     string
	CoverLetterTips string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AnalyzeJob      string
	AnalyzeResume   string
	AnalyzeMatch    string
	SuggestATS      string
	CoverLetter     string
	CoverLetterRaw  string
	CoverLetterTips string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeJob: `You are an expert HR analyst who extracts structured requirements from job postings. Your core principles are:

- Report only what the posting actually states, never infer beyond it
- Respond with valid JSON and nothing else
- Use empty arrays or empty strings for information the posting does not provide`,

	AnalyzeResume: `You are an expert resume analyst who extracts structured candidate information from resume text. Your core principles are:

- Report only what the resume actually contains, never invent or embellish
- Respond with valid JSON and nothing else
- Use empty arrays or empty strings for information the resume does not provide`,

	AnalyzeMatch: `You are a professional resume analyzer who compares structured job requirements against structured candidate details. Your core principles are:

- Ground every observation in the provided data
- Respond with a single valid JSON object and no additional text
- Provide specific, actionable insights rather than generic advice`,

	SuggestATS: `You are an ATS resume optimization assistant. You compare a resume against a job description and return concrete, section-level suggestions as valid JSON with no additional text.`,

	CoverLetter: `You are an experienced career coach who writes compelling, honest cover letters. Every claim must be traceable to the candidate's actual background. Output plain prose, formatted as a business letter, with no JSON and no markdown.`,

	CoverLetterTips: `You are an experienced career coach sharing practical cover letter advice.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AnalyzeJob: `Analyze this job description and provide a detailed JSON with:
1. Key technical skills required
2. Soft skills required
3. Years of experience required
4. Education requirements
5. Key responsibilities
6. Company culture indicators
7. Required certifications
8. Industry type
9. Job level (entry, mid, senior)
10. Key technologies mentioned

IMPORTANT: Respond ONLY with valid JSON format, no additional text.

Format the response as this EXACT JSON structure:
{
    "technical_skills": ["skill1", "skill2", "skill3"],
    "soft_skills": ["communication", "teamwork"],
    "years_experience": "3-5 years",
    "education_requirements": ["Bachelor's in Computer Science"],
    "key_responsibilities": ["responsibility1", "responsibility2"],
    "company_culture": "collaborative, innovative environment",
    "certifications": ["AWS", "PMP"],
    "industry_type": "Technology",
    "job_level": "mid-level",
    "key_technologies": ["Python", "AWS", "Docker"]
}

Job Description:
%s`,

	AnalyzeResume: `Analyze this resume and provide a detailed JSON with:
1. Technical skills
2. Soft skills
3. Years of experience
4. Education details
5. Key achievements
6. Core competencies
7. Industry experience
8. Leadership experience
9. Technologies used
10. Projects completed

IMPORTANT: Respond ONLY with valid JSON format, no additional text.

Format the response as this EXACT JSON structure:
{
    "technical_skills": ["Python", "JavaScript", "AWS"],
    "soft_skills": ["leadership", "communication"],
    "years_experience": "5 years",
    "education": [{"degree": "Bachelor's", "field": "Computer Science", "institution": "XYZ University"}],
    "key_achievements": ["achievement1", "achievement2"],
    "core_competencies": ["competency1", "competency2"],
    "industry_experience": ["Technology", "Finance"],
    "leadership_experience": "Led team of 5 developers",
    "technologies_used": ["React", "Node.js", "MongoDB"],
    "projects": ["Project 1: Description", "Project 2: Description"]
}

Resume:
%s`,

	AnalyzeMatch: `Compare the provided job requirements and resume to generate a detailed analysis in valid JSON format.

IMPORTANT: Respond ONLY with a valid JSON object and NO additional text or formatting.

Job Requirements:
%s

Resume Details:
%s

Generate a response following this EXACT structure:
{
"overall_match_percentage":"85%%",
"matching_skills":[{"skill_name":"Python","is_match":true},{"skill_name":"AWS","is_match":true}],
"missing_skills":[{"skill_name":"Docker","is_match":false,"suggestion":"Consider obtaining Docker certification"}],
"skills_gap_analysis":{"technical_skills":"Specific technical gap analysis","soft_skills":"Specific soft skills gap analysis"},
"experience_match_analysis":"Detailed experience match analysis",
"education_match_analysis":"Detailed education match analysis",
"recommendations_for_improvement":[{"recommendation":"Add metrics","section":"Experience","guidance":"Quantify achievements with specific numbers"}],
"ats_optimization_suggestions":[{"section":"Skills","current_content":"Current format","suggested_change":"Specific change needed","keywords_to_add":["keyword1","keyword2"],"formatting_suggestion":"Specific format change","reason":"Detailed reason"}],
"key_strengths":"Specific key strengths",
"areas_of_improvement":"Specific areas to improve"
}

Focus on providing detailed, actionable insights for each field. Keep the JSON structure exact but replace the example content with detailed analysis based on the provided job and resume.`,

	SuggestATS: `Compare the following resume with the given job description
and return JSON in this format:
{
    "ats_optimization_suggestions": [
        {
            "section": "Section Name",
            "current_content": "Current text",
            "suggested_change": "Improved version",
            "keywords_to_add": ["keyword1", "keyword2"],
            "formatting_suggestion": "Any format improvements",
            "reason": "Why this change helps"
        }
    ]
}

Resume:
%s

Job Description:
%s

Focus on:
1. Keyword optimization for ATS systems
2. Skills alignment with job requirements
3. Action verb improvements
4. Quantifiable achievements
5. Industry-specific terminology`,

	CoverLetter: `Generate a compelling cover letter using this information:

Job Details:
%s

Candidate Details:
%s

Match Analysis:
%s

Tone: %s

Requirements:
1. Make it personal and specific to the job
2. Highlight the strongest skill matches
3. Address potential gaps professionally
4. Keep it concise but impactful (3-4 paragraphs)
5. Use the specified tone: %s
6. Include specific examples from the resume
7. Make it ATS-friendly with relevant keywords
8. Add a strong call to action
9. Format as a proper business letter
10. Don't exceed 400 words

Generate a professional cover letter that will impress hiring managers.`,

	CoverLetterRaw: `Create a personalized cover letter based on:

Resume:
%s

Job Description:
%s

Company Name: %s
Position: %s
Tone: %s

Instructions:
1. Write a compelling opening that mentions the specific position
2. Highlight 2-3 key qualifications that match the job requirements
3. Include specific achievements from the resume with metrics
4. Show enthusiasm for the company and role
5. Address any potential concerns proactively
6. End with a strong call to action
7. Keep it professional and under 350 words
8. Use %s tone throughout

Format as a proper business letter with clear paragraphs.`,

	CoverLetterTips: `Provide 8-10 actionable tips for writing an excellent cover letter with a %s tone.

Include tips about:
1. Opening statements
2. Body paragraph structure
3. Closing statements
4. Formatting and length
5. Common mistakes to avoid
6. ATS optimization
7. Personalization techniques
8. Industry-specific advice

Format as a numbered list with brief explanations.`,
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() (SystemPrompts, UserPrompts) {
	return DefaultSystemPrompts, DefaultUserPrompts
}
