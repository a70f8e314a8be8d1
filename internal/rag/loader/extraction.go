package loader

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var builder strings.Builder
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			// a bad page should not sink the whole document
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(content)
	}
	return builder.String(), nil
}

// extractDocxOdtRtf reads a .docx, .odt or .rtf file and returns its text.
func extractDocxOdtRtf(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return text, nil
}

// protectExtract guards against the pdf library hanging on malformed pages.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout extracting page")
	}
}
