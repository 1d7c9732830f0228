package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{name: "lowercase pdf", filename: "resume.pdf", expected: ".pdf"},
		{name: "uppercase normalized", filename: "RESUME.PDF", expected: ".pdf"},
		{name: "no extension", filename: "resume", expected: ""},
		{name: "multiple dots", filename: "resume.final.docx", expected: ".docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetFileExtension(tt.filename); got != tt.expected {
				t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{name: "txt", filename: "resume.txt", expected: true},
		{name: "markdown", filename: "notes.md", expected: true},
		{name: "upper-case txt", filename: "RESUME.TXT", expected: true},
		{name: "pdf", filename: "resume.pdf", expected: false},
		{name: "no extension", filename: "resume", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTextFile(tt.filename); got != tt.expected {
				t.Errorf("IsTextFile(%q) = %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestIsResumeDocument(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{name: "pdf", filename: "resume.pdf", expected: true},
		{name: "docx", filename: "resume.docx", expected: true},
		{name: "upper-case pdf", filename: "RESUME.PDF", expected: true},
		{name: "txt", filename: "resume.txt", expected: false},
		{name: "legacy doc", filename: "resume.doc", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsResumeDocument(tt.filename); got != tt.expected {
				t.Errorf("IsResumeDocument(%q) = %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{name: "bytes", size: 512, expected: "512 B"},
		{name: "kilobytes", size: 2048, expected: "2.0 KB"},
		{name: "megabytes", size: 10 * 1024 * 1024, expected: "10.0 MB"},
		{name: "zero", size: 0, expected: "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFileSize(tt.size); got != tt.expected {
				t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.expected)
			}
		})
	}
}

func TestValidateInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "resume.txt")
	if err := os.WriteFile(existing, []byte("content"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filename    string
		expectError bool
	}{
		{name: "existing file", filename: existing, expectError: false},
		{name: "missing file", filename: filepath.Join(tmpDir, "missing.txt"), expectError: true},
		{name: "directory", filename: tmpDir, expectError: true},
		{name: "empty filename", filename: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.filename)
			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestValidateOutputFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("empty filename means stdout", func(t *testing.T) {
		if err := ValidateOutputFile(""); err != nil {
			t.Errorf("Expected no error but got: %v", err)
		}
	})

	t.Run("creates missing directories", func(t *testing.T) {
		target := filepath.Join(tmpDir, "nested", "dir", "report.json")
		if err := ValidateOutputFile(target); err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if _, err := os.Stat(filepath.Dir(target)); err != nil {
			t.Errorf("Expected directory to be created: %v", err)
		}
	})
}
