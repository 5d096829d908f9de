package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

type TextExtractor interface {
	// ExtractFromURL fetches a PDF and returns its concatenated plain text:
	// pages in order, fragments within a page joined by single spaces, one
	// trailing space per page. Layout and fonts are deliberately discarded.
	ExtractFromURL(ctx context.Context, url string) (string, error)
}

type pdfTextExtractor struct {
	httpClient *http.Client
}

func NewTextExtractor() TextExtractor {
	return &pdfTextExtractor{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *pdfTextExtractor) ExtractFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: invalid document URL: %v", ErrExtraction, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to fetch document: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: document fetch returned status %d", ErrExtraction, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read document body: %v", ErrExtraction, err)
	}

	return p.extractText(data)
}

func (p *pdfTextExtractor) extractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse PDF: %v", ErrExtraction, err)
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return "", fmt.Errorf("%w: PDF has no pages", ErrExtraction)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		fragments := make([]string, 0, len(content.Text))
		for _, fragment := range content.Text {
			fragments = append(fragments, fragment.S)
		}

		textBuilder.WriteString(strings.Join(fragments, " "))
		textBuilder.WriteString(" ")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", ErrExtraction)
	}

	return text, nil
}
