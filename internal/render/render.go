package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"hireready/internal/errors"
	"hireready/internal/types"

	"github.com/go-pdf/fpdf"
)

// sectionKeywords are resume category names matched case-insensitively as
// substrings when classifying a line as a section header
var sectionKeywords = []string{
	"EXPERIENCE",
	"EDUCATION",
	"SKILLS",
	"PROJECTS",
	"CERTIFICATIONS",
	"SUMMARY",
	"OBJECTIVE",
	"WORK EXPERIENCE",
	"PROFESSIONAL EXPERIENCE",
	"TECHNICAL SKILLS",
	"ACHIEVEMENTS",
	"AWARDS",
}

// maxCurrentContentChars caps the "Current:" excerpt of a suggestion
const maxCurrentContentChars = 100

// Section is one titled block of a parsed resume. Lines before the first
// detected header form an untitled leading section with an empty Title.
type Section struct {
	Title   string
	Bullets []string
}

// SplitSections splits resume text into sections using a header heuristic:
// a non-blank line is a header if it is entirely upper-case and longer than
// 3 characters, or if it contains a known section keyword. Blank lines are
// dropped; every other line becomes a bullet under the current section.
// The heuristic is lossy for unconventional resumes, which is acceptable
// for an advisory document.
func SplitSections(resumeText string) []Section {
	var sections []Section
	current := Section{}

	flush := func() {
		if current.Title != "" || len(current.Bullets) > 0 {
			sections = append(sections, current)
		}
		current = Section{}
	}

	for _, line := range strings.Split(resumeText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isSectionHeader(line) {
			flush()
			current.Title = line
			continue
		}
		current.Bullets = append(current.Bullets, line)
	}
	flush()

	return sections
}

func isSectionHeader(line string) bool {
	if isAllUpper(line) && len(line) > 3 {
		return true
	}
	upper := strings.ToUpper(line)
	for _, keyword := range sectionKeywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

// isAllUpper reports whether s has at least one cased rune and no lower-case
// runes, mirroring the usual "isupper" string predicate
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// Renderer lays out an optimized resume PDF from plain resume text plus the
// ATS suggestions of a match analysis
type Renderer struct{}

// NewRenderer creates a Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the PDF document: a fixed title, one titled block of bullets
// per detected section, and a trailing recommendations page when the match
// analysis carries ATS suggestions. Any failure yields empty bytes and a
// render error; callers must treat a zero-length result as failure.
func (r *Renderer) Render(resumeText string, match types.MatchAnalysis) (out []byte, err error) {
	// Layout bugs in the document builder surface as panics
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = errors.NewRenderError(errors.ErrCodeRenderFailed,
				"Failed to build resume document", fmt.Errorf("renderer panic: %v", rec))
		}
	}()

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(15, 20, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr("Optimized Resume"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	for _, section := range SplitSections(resumeText) {
		if section.Title != "" {
			doc.SetFont("Helvetica", "B", 13)
			doc.MultiCell(0, 7, tr(section.Title), "", "L", false)
			doc.Ln(1)
		}
		doc.SetFont("Helvetica", "", 10)
		for _, bullet := range section.Bullets {
			doc.MultiCell(0, 5, tr("• "+bullet), "", "L", false)
		}
		doc.Ln(3)
	}

	if len(match.ATSOptimizationSuggestions) > 0 {
		doc.AddPage()
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 10, tr("ATS Optimization Recommendations"), "", 1, "L", false, 0, "")
		doc.Ln(2)

		for i, suggestion := range match.ATSOptimizationSuggestions {
			writeSuggestion(doc, tr, i+1, suggestion)
		}
	}

	var buf bytes.Buffer
	if outErr := doc.Output(&buf); outErr != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed,
			"Failed to build resume document", outErr)
	}

	return buf.Bytes(), nil
}

// writeSuggestion renders one numbered recommendation sub-block, omitting
// empty fields
func writeSuggestion(doc *fpdf.Fpdf, tr func(string) string, n int, s types.ATSSuggestion) {
	doc.SetFont("Helvetica", "B", 11)
	title := fmt.Sprintf("Recommendation %d", n)
	if s.Section != "" {
		title = fmt.Sprintf("Recommendation %d: %s", n, s.Section)
	}
	doc.MultiCell(0, 6, tr(title), "", "L", false)

	doc.SetFont("Helvetica", "", 10)
	if s.CurrentContent != "" {
		doc.MultiCell(0, 5, tr("Current: "+truncateContent(s.CurrentContent)), "", "L", false)
	}
	if s.SuggestedChange != "" {
		doc.MultiCell(0, 5, tr("Suggestion: "+s.SuggestedChange), "", "L", false)
	}
	if len(s.KeywordsToAdd) > 0 {
		doc.MultiCell(0, 5, tr("Keywords to Add: "+strings.Join(s.KeywordsToAdd, ", ")), "", "L", false)
	}
	if s.FormattingSuggestion != "" {
		doc.MultiCell(0, 5, tr("Formatting: "+s.FormattingSuggestion), "", "L", false)
	}
	if s.Reason != "" {
		doc.MultiCell(0, 5, tr("Why: "+s.Reason), "", "L", false)
	}
	doc.Ln(3)
}

func truncateContent(s string) string {
	if len(s) > maxCurrentContentChars {
		return s[:maxCurrentContentChars] + "..."
	}
	return s
}
