package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"hireready/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// minTextLength guards against scanned-image PDFs whose pages extract to
// nothing: a resume below this many non-space characters is unusable.
const minTextLength = 20

// Extract converts uploaded resume bytes into plain text, dispatching on the
// file extension. Only .pdf and .docx are supported; anything else is an
// unsupported format error. PDF pages are concatenated with no separator,
// DOCX paragraphs join with one newline each. Parse failures of any kind
// surface as extraction errors, never as raw parser errors or panics.
func Extract(data []byte, fileName string) (text string, err error) {
	// Malformed documents can panic deep inside the parsers
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				fmt.Sprintf("Failed to extract text from %s", fileName),
				fmt.Errorf("parser panic: %v", r))
		}
	}()

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	default:
		return "", errors.NewExtractionError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file format %q (only .pdf and .docx are supported)", filepath.Ext(fileName)), nil)
	}

	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Failed to extract text from %s", fileName), err)
	}

	if nonSpaceLen(text) < minTextLength {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("No readable text found in %s (the file may be a scanned image)", fileName), nil)
	}

	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Pages without extractable text contribute nothing
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent()), nil
}

// paragraphText flattens WordprocessingML into plain text, one newline per
// paragraph. Runs of text live in w:t elements grouped under w:p paragraph
// elements; everything else in the markup is ignored.
func paragraphText(content string) string {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var out strings.Builder
	var para strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteString(para.String())
				out.WriteString("\n")
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	// Text outside any closed paragraph still counts
	if para.Len() > 0 {
		out.WriteString(para.String())
		out.WriteString("\n")
	}

	return out.String()
}

func nonSpaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
