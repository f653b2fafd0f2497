package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPaper pulls text from a page-oriented PDF using pdfcpu content
// extraction, concatenating pages in page order.
func extractPaper(path string) (string, error) {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	pageCount := pdfCtx.PageCount
	if pageCount == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	outDir, err := os.MkdirTemp("", "cognitia-pdf-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := pdfmodel.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("extract pdf content: %w", err)
	}

	var b strings.Builder
	for page := 1; page <= pageCount; page++ {
		content, ok := readPageContent(outDir, page)
		if !ok {
			continue
		}
		b.WriteString(textFromContent(content))
		b.WriteByte(' ')
	}

	return b.String(), nil
}

// readPageContent locates the extracted content stream for a page; pdfcpu
// names these files differently across versions.
func readPageContent(dir string, page int) ([]byte, bool) {
	candidates := []string{
		fmt.Sprintf("page_%d.txt", page),
		fmt.Sprintf("Content_page_%d.txt", page),
	}
	for _, name := range candidates {
		if data, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
			return data, true
		}
	}

	// Fall back to any file mentioning the page number
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	suffix := fmt.Sprintf("_%d.txt", page)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		if data, err := os.ReadFile(filepath.Join(dir, e.Name())); err == nil {
			return data, true
		}
	}
	return nil, false
}

// textFromContent recovers the string literals from a PDF content stream.
// Text-showing operators (Tj, TJ, ', ") carry their glyphs as parenthesized
// literals; everything else in the stream is positioning and state.
func textFromContent(content []byte) string {
	var b strings.Builder
	depth := 0
	escaped := false

	for i := 0; i < len(content); i++ {
		c := content[i]

		if depth == 0 {
			if c == '(' {
				depth = 1
			}
			continue
		}

		if escaped {
			switch c {
			case 'n', 'r', 't':
				b.WriteByte(' ')
			case '(', ')', '\\':
				b.WriteByte(c)
			default:
				// Octal escapes and anything else are dropped
			}
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
