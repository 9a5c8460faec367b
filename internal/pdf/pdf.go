// Package pdf wraps MuPDF (via go-fitz) for resume text extraction and
// first-page preview rendering.
package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrNoPages indicates the document parsed but contains no pages.
var ErrNoPages = errors.New("pdf has no pages")

// Processor abstracts PDF operations so services can be tested without MuPDF.
type Processor interface {
	// ExtractText returns the plain text of all pages joined with newlines, trimmed.
	ExtractText(data []byte) (string, error)
	// RenderFirstPagePNG renders page one as a PNG image.
	RenderFirstPagePNG(data []byte) ([]byte, error)
}

// MuPDF is the production Processor backed by the MuPDF engine.
type MuPDF struct{}

// NewMuPDF returns a MuPDF-backed processor.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

var _ Processor = (*MuPDF)(nil)

// ExtractText extracts plain text from every page of the PDF.
func (p *MuPDF) ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", ErrNoPages
	}

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extract text from page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// RenderFirstPagePNG renders the first page to PNG bytes.
func (p *MuPDF) RenderFirstPagePNG(data []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrNoPages
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("render first page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 returns the standard base64 form of rendered image bytes,
// the representation expected by vision-capable chat APIs.
func EncodeBase64(img []byte) string {
	return base64.StdEncoding.EncodeToString(img)
}
