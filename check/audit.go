// Package check audits sentence source against usage ledger without changing
// anything.
package check

import (
	"fmt"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"dailysent/ledger"
	"dailysent/source"
)

// Report is result of source audit.
type Report struct {
	Entries int
	Dropped int
	// Duplicates are entries repeating English sentence of an earlier
	// entry, they would never be published. Only tracked when ledger
	// addresses entries by content.
	Duplicates []source.Entry
	Used       int
	Remaining  int
	// Days is number of full publications left.
	Days int
	// MultiSentence are entries which English field reads as more than one
	// sentence.
	MultiSentence []source.Entry
}

// Auditor splits English text into sentences.
type Auditor struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewAuditor() (*Auditor, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare sentence tokenizer: %w", err)
	}
	return &Auditor{tokenizer: tokenizer}, nil
}

// Sentences returns number of sentences in text.
func (a *Auditor) Sentences(text string) int {
	n := 0
	for _, s := range a.tokenizer.Tokenize(text) {
		if len(s.Text) > 0 {
			n++
		}
	}
	return n
}

// Audit counts what is left for publishing, perDay is number of entries
// published daily.
func (a *Auditor) Audit(src *source.Source, tr ledger.Tracker, perDay int) *Report {
	r := &Report{Entries: len(src.Entries), Dropped: src.Dropped}

	seen := make(map[string]bool, len(src.Entries))
	for _, e := range src.Entries {
		if a.Sentences(e.English) > 1 {
			r.MultiSentence = append(r.MultiSentence, e)
		}
		if tr.Dedup() {
			k := e.Key()
			if seen[k] {
				r.Duplicates = append(r.Duplicates, e)
				continue
			}
			seen[k] = true
		}
		if tr.Used(e) {
			r.Used++
			continue
		}
		r.Remaining++
	}
	if perDay > 0 {
		r.Days = r.Remaining / perDay
	}
	return r
}
