package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// maxPDFTextBytes caps how much text is pulled out of a single PDF.
const maxPDFTextBytes = 1 << 20

// extractPDF reads the whole file and extracts its plain text. The pdf
// library panics on some malformed documents, so the panic is converted
// into an error here and degraded to a placeholder by the caller.
func extractPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during PDF extraction: %v", r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF reader: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract plain text: %w", err)
	}

	raw, err := io.ReadAll(io.LimitReader(plainText, maxPDFTextBytes))
	if err != nil {
		return "", fmt.Errorf("read plain text: %w", err)
	}

	return normalizeWhitespace(string(raw)), nil
}
