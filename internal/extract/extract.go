// Package extract recovers plain text from uploaded resume documents.
// Binary formats (PDF, DOCX) are decoded by external libraries; the package
// guarantees that a successful extraction always yields non-empty text.
package extract

import (
	"bytes"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Text decodes raw document bytes into plain text.
// Returns UnsupportedFormatError for formats outside PDF/DOCX/TEXT and
// ExtractionError when decoding fails or yields only whitespace.
func Text(raw []byte, format types.Format) (string, error) {
	var text string
	var err error

	switch format {
	case types.FormatPDF:
		text, err = pdfText(raw)
	case types.FormatDOCX:
		text, err = docxText(raw)
	case types.FormatText:
		text, err = plainText(raw)
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{
			Format:  string(format),
			Message: "document contains no extractable text",
		}
	}

	return text, nil
}

// Document extracts text and wraps it as an immutable ResumeDocument.
func Document(raw []byte, format types.Format) (types.ResumeDocument, error) {
	text, err := Text(raw, format)
	if err != nil {
		return types.ResumeDocument{}, err
	}
	return types.ResumeDocument{
		RawText:     text,
		Format:      format,
		ExtractedAt: time.Now().UTC(),
	}, nil
}

func pdfText(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", &ExtractionError{
			Format:  string(types.FormatPDF),
			Message: "failed to open PDF",
			Cause:   err,
		}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Pages that fail individually are skipped; an image-only PDF
		// surfaces as the empty-text check in Text.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func docxText(raw []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", &ExtractionError{
			Format:  string(types.FormatDOCX),
			Message: "failed to open DOCX",
			Cause:   err,
		}
	}
	defer func() { _ = doc.Close() }()

	return doc.Editable().GetContent(), nil
}

func plainText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", &ExtractionError{
			Format:  string(types.FormatText),
			Message: "input is not valid UTF-8 text",
		}
	}
	return string(raw), nil
}
