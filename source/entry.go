// Package source reads sentence sources and groups their lines into entries.
package source

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNotText is returned when source file content is recognized as
	// some binary format.
	ErrNotText = errors.New("source does not look like text")
	// ErrNotEnoughEntries is returned when source does not have enough
	// entries for a single publication. Nothing should be written then.
	ErrNotEnoughEntries = errors.New("not enough entries")
)

// Entry is a single sentence set. It never changes after it was read.
type Entry struct {
	English       string
	Translation   string
	Pronunciation string
	Spare         string

	// Index is position among valid entries of the source, 0 based.
	Index int
	// Line is 1 based line number where entry starts in the source.
	Line int

	// byte span in decoded source text
	start, end int
}

// Key returns ledger key of the entry.
func (e Entry) Key() string {
	return Key(e.English)
}

func (e Entry) String() string {
	return fmt.Sprintf("#%d (line %d) %q", e.Index+1, e.Line, e.English)
}

// Key hashes English sentence the way it is remembered in ledger: surrounding
// white space and letter case do not matter. Hash is hex encoded md5, ledgers
// produced by earlier versions of the site scripts stay valid. Text is not
// normalized, composed and decomposed spellings get different keys exactly as
// they did there.
func Key(english string) string {
	s := cases.Lower(language.Und).String(strings.TrimSpace(english))
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// First returns first n entries in source order for which skip returns false.
// When there are fewer than n such entries ErrNotEnoughEntries is returned
// together with whatever was found.
func First(entries []Entry, n int, skip func(Entry) bool) ([]Entry, error) {
	selected := make([]Entry, 0, n)
	for _, e := range entries {
		if len(selected) == n {
			break
		}
		if skip != nil && skip(e) {
			continue
		}
		selected = append(selected, e)
	}
	if len(selected) < n {
		return selected, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughEntries, n, len(selected))
	}
	return selected, nil
}
