package extract

import (
	"errors"
	"testing"

	hirereadyErrors "hireready/internal/errors"
)

func TestExtractRejectsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
	}{
		{name: "plain text", fileName: "resume.txt"},
		{name: "markdown", fileName: "resume.md"},
		{name: "legacy word", fileName: "resume.doc"},
		{name: "no extension", fileName: "resume"},
		{name: "upper-case unsupported", fileName: "RESUME.TXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte("some resume content"), tt.fileName)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !hirereadyErrors.IsType(err, hirereadyErrors.ErrorTypeExtraction) {
				t.Fatalf("Expected extraction error type, got: %v", err)
			}
			var appErr *hirereadyErrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if appErr.Code != hirereadyErrors.ErrCodeUnsupportedFormat {
				t.Errorf("Expected code %s, got %s", hirereadyErrors.ErrCodeUnsupportedFormat, appErr.Code)
			}
		})
	}
}

func TestExtractRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
	}{
		{name: "garbage pdf", fileName: "resume.pdf", data: []byte("this is not a pdf")},
		{name: "empty pdf", fileName: "resume.pdf", data: nil},
		{name: "garbage docx", fileName: "resume.docx", data: []byte("this is not a zip archive")},
		{name: "empty docx", fileName: "resume.docx", data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data, tt.fileName)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !hirereadyErrors.IsType(err, hirereadyErrors.ErrorTypeExtraction) {
				t.Fatalf("Expected extraction error type, got: %v", err)
			}
			var appErr *hirereadyErrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if appErr.Code != hirereadyErrors.ErrCodeExtractionFailed {
				t.Errorf("Expected code %s, got %s", hirereadyErrors.ErrCodeExtractionFailed, appErr.Code)
			}
		})
	}
}

func TestParagraphText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "single paragraph",
			content:  `<w:p><w:r><w:t>Hello world</w:t></w:r></w:p>`,
			expected: "Hello world\n",
		},
		{
			name:     "multiple paragraphs",
			content:  `<w:p><w:r><w:t>First</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`,
			expected: "First\nSecond\n",
		},
		{
			name:     "multiple runs join within a paragraph",
			content:  `<w:p><w:r><w:t>Hel</w:t></w:r><w:r><w:t>lo</w:t></w:r></w:p>`,
			expected: "Hello\n",
		},
		{
			name:     "text outside t elements ignored",
			content:  `<w:p><w:pPr>style noise</w:pPr><w:r><w:t>Kept</w:t></w:r></w:p>`,
			expected: "Kept\n",
		},
		{
			name:     "empty paragraph keeps its newline",
			content:  `<w:p></w:p><w:p><w:r><w:t>After</w:t></w:r></w:p>`,
			expected: "\nAfter\n",
		},
		{
			name:     "text without closing paragraph still counts",
			content:  `<w:r><w:t>Dangling`,
			expected: "Dangling\n",
		},
		{
			name:     "no text content",
			content:  `<w:sectPr></w:sectPr>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paragraphText(tt.content); got != tt.expected {
				t.Errorf("paragraphText(%q) = %q, want %q", tt.content, got, tt.expected)
			}
		})
	}
}

func TestNonSpaceLen(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "plain word", input: "hello", expected: 5},
		{name: "spaces ignored", input: "a b c", expected: 3},
		{name: "newlines and tabs ignored", input: "a\n\tb", expected: 2},
		{name: "whitespace only", input: " \n\t ", expected: 0},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nonSpaceLen(tt.input); got != tt.expected {
				t.Errorf("nonSpaceLen(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
