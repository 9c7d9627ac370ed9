package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StubConverter produces a minimal single-page PDF wrapping the HTML as a
// comment. Used when printing is disabled so the PDF endpoints still
// return a well-formed document.
type StubConverter struct{}

var _ PDFConverter = (*StubConverter)(nil)

// NewStubConverter creates a new StubConverter
func NewStubConverter() *StubConverter {
	return &StubConverter{}
}

// Convert wraps the HTML in a skeleton PDF
func (s *StubConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New("html content is empty")
	}

	body := fmt.Sprintf("%%PDF-1.4\n%% rendering disabled\n%% content length %d\n%%%%EOF\n", len(html))
	return []byte(body), nil
}
