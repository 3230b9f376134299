// Package pdftext reads the plain text of uploaded court decisions.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JustJay7/hukuk-okuyucu/pkg/logger"
)

var (
	// ErrNotPDF is returned when the input does not start with a PDF header
	ErrNotPDF = errors.New("file is not a PDF")
	// ErrTooLarge is returned when the input exceeds the configured size limit
	ErrTooLarge = errors.New("file exceeds the upload size limit")
	// ErrUnreadable is returned when no usable text could be read; the
	// document is most likely a scan without a text layer
	ErrUnreadable = errors.New("no readable text found in document")
)

var pdfHeader = []byte("%PDF-")

// Document is the text content of one PDF
type Document struct {
	Text        string
	Pages       int
	FailedPages int
}

// Extractor reads text from PDF files
type Extractor struct {
	logger  *logger.Logger
	maxSize int64
}

// NewExtractor creates an extractor that rejects inputs above maxSize bytes
func NewExtractor(log *logger.Logger, maxSize int64) *Extractor {
	return &Extractor{logger: log, maxSize: maxSize}
}

// ExtractBytes is Extract over an in-memory file
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (Document, error) {
	return e.Extract(ctx, bytes.NewReader(data), int64(len(data)))
}

// Extract returns the text of every readable page joined by newlines.
// Pages that fail to decode are skipped and counted in FailedPages. The page
// count is the larger of the two parsers' counts; a file neither parser can
// open is rejected with ErrNotPDF.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (Document, error) {
	if e.maxSize > 0 && size > e.maxSize {
		return Document{}, ErrTooLarge
	}

	header := make([]byte, len(pdfHeader))
	if _, err := r.ReadAt(header, 0); err != nil || !bytes.Equal(header, pdfHeader) {
		return Document{}, ErrNotPDF
	}

	expected := e.pageCount(io.NewSectionReader(r, 0, size))

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		if expected == 0 {
			return Document{}, fmt.Errorf("%w: %v", ErrNotPDF, err)
		}
		// pdfcpu could parse the file, so it is a PDF without a text layer we can reach
		e.logger.Debug("Text reader could not open document", "pages", expected, "error", err)
		return Document{Pages: expected, FailedPages: expected}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	doc := Document{Pages: reader.NumPage()}
	if expected > doc.Pages {
		// pages missing from the text reader's tree are counted as failed
		e.logger.Warn("Page count mismatch", "pdfcpu", expected, "reader", doc.Pages)
		doc.Pages = expected
	}

	pages := make([]string, 0, doc.Pages)
	for i := 1; i <= doc.Pages; i++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}

		text, err := pageText(reader, i)
		if err != nil {
			doc.FailedPages++
			e.logger.Debug("Failed to read page", "page", i, "error", err)
			continue
		}
		pages = append(pages, text)
	}

	doc.Text = strings.Join(pages, "\n")
	return doc, nil
}

// pageCount asks pdfcpu for the page count under relaxed validation. It
// returns 0 when the file cannot be parsed that way; ledongthuc/pdf is
// more forgiving with the broken cross-reference tables court systems emit.
func (e *Extractor) pageCount(rs io.ReadSeeker) (count int) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("pdfcpu panicked while reading document", "error", r)
			count = 0
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		e.logger.Debug("pdfcpu could not read document", "error", err)
		return 0
	}
	if err := ctx.EnsurePageCount(); err != nil {
		e.logger.Debug("pdfcpu could not count pages", "error", err)
		return 0
	}
	return ctx.PageCount
}

func pageText(reader *pdf.Reader, i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", i, r)
		}
	}()

	page := reader.Page(i)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d not found", i)
	}
	return page.GetPlainText(nil)
}

// CheckReadable returns ErrUnreadable when text has fewer than minRunes
// non-space runes
func CheckReadable(text string, minRunes int) error {
	count := utf8.RuneCountInString(strings.Join(strings.Fields(text), ""))
	if count < minRunes {
		return fmt.Errorf("%w: %d characters, need %d", ErrUnreadable, count, minRunes)
	}
	return nil
}
