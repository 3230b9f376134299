// Package extract turns the text of a Turkish court decision into an
// ExtractedRecord using ordered regular-expression tables.
package extract

import (
	"fmt"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

// Options bounds the windows used by classification and amount lookup
type Options struct {
	FocusWindow  int
	AmountWindow int
}

// DefaultOptions returns the window sizes used when none are configured
func DefaultOptions() Options {
	return Options{FocusWindow: 1500, AmountWindow: 60}
}

// Analyzer runs the full pipeline over already extracted text. It holds
// only compiled tables and is safe for concurrent use.
type Analyzer struct {
	normalizer *Normalizer
	fields     *FieldExtractor
	classifier *Classifier
	amounts    *AmountExtractor
}

// New compiles the rule tables into an Analyzer
func New(t rules.Tables, opts Options) (*Analyzer, error) {
	if opts.FocusWindow <= 0 || opts.AmountWindow <= 0 {
		return nil, fmt.Errorf("windows must be positive, got focus=%d amount=%d", opts.FocusWindow, opts.AmountWindow)
	}

	normalizer, err := NewNormalizer(t.Substitutions)
	if err != nil {
		return nil, err
	}
	fields, err := NewFieldExtractor(t)
	if err != nil {
		return nil, err
	}
	classifier, err := NewClassifier(t, opts.FocusWindow)
	if err != nil {
		return nil, err
	}
	amounts, err := NewAmountExtractor(t.Amounts, opts.AmountWindow)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		normalizer: normalizer,
		fields:     fields,
		classifier: classifier,
		amounts:    amounts,
	}, nil
}

// Normalize exposes the text repair step
func (a *Analyzer) Normalize(text string) string {
	return a.normalizer.Normalize(text)
}

// Analyze builds a record for one document. It never fails: fields that
// cannot be found keep their placeholders.
func (a *Analyzer) Analyze(docID, text string) Record {
	rec := NewRecord(docID)
	text = a.normalizer.Normalize(text)

	a.fields.Extract(text, &rec)

	window := a.classifier.FocusWindow(text)
	v := a.classifier.Classify(window)
	rec.Set(FieldOutcome, string(v.Outcome))
	rec.Set(FieldWinner, v.Winner)
	rec.Set(FieldLoser, v.Loser)
	rec.Set(FieldPaymentDirection, v.PaymentDirection)

	a.amounts.Extract(window, &rec)
	return rec
}

// Explain returns the focus window and the verdict for normalized text,
// for review pages that show why an outcome was chosen
func (a *Analyzer) Explain(text string) (string, Verdict) {
	text = a.normalizer.Normalize(text)
	window := a.classifier.FocusWindow(text)
	return window, a.classifier.Classify(window)
}
