package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/logging"
	"github.com/Tarunp72/SMART-SDLC/internal/metrics"
	"github.com/ledongthuc/pdf"
)

// UnreadableDocumentError means the bytes could not be parsed as a document at all.
type UnreadableDocumentError struct {
	Err error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("unreadable document: %v", e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error {
	return e.Err
}

// pageSource is a parsed document addressed by 1-based page numbers.
type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

type opener func(data []byte) (pageSource, error)

// Extractor pulls plain text out of uploaded PDF documents. No OCR is attempted,
// so scanned pages come back empty.
type Extractor struct {
	open opener
}

func NewExtractor() *Extractor {
	return &Extractor{open: openPDF}
}

// Extract reads every page in order and joins the non-empty ones, each
// followed by a newline. Empty or failing pages are skipped; a document with
// no text at all yields "" without error.
func (e *Extractor) Extract(data []byte) (string, error) {
	source, err := e.open(data)
	if err != nil {
		metrics.RecordExtraction("unreadable")
		return "", &UnreadableDocumentError{Err: err}
	}

	log := logging.Component("extract")
	var builder strings.Builder
	for n := 1; n <= source.NumPage(); n++ {
		text, err := source.PageText(n)
		if err != nil {
			log.WithError(err).WithField("page", n).Debug("skipping unreadable page")
			continue
		}
		if text == "" {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	metrics.RecordExtraction("success")
	return builder.String(), nil
}

type pdfSource struct {
	reader *pdf.Reader
}

func openPDF(data []byte) (source pageSource, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			source = nil
			err = fmt.Errorf("pdf parser panic: %v", recovered)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &pdfSource{reader: reader}, nil
}

func (s *pdfSource) NumPage() int {
	return s.reader.NumPage()
}

func (s *pdfSource) PageText(n int) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			text = ""
			err = fmt.Errorf("page %d: pdf parser panic: %v", n, recovered)
		}
	}()

	page := s.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
