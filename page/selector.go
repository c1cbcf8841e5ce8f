package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Selector is a simple CSS selector: optional tag name followed by any
// number of #id and .class parts, like "section#daily.post". Combinators
// and attribute selectors are not supported.
type Selector struct {
	Tag     string
	ID      string
	Classes []string
}

// Span is half open byte range in the document.
type Span struct {
	Start, End int
}

var voidElements = []string{"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "source", "track", "wbr"}

// ParseSelector parses simple selector.
func ParseSelector(s string) (Selector, error) {
	var sel Selector

	s = strings.TrimSpace(s)
	if s == "" {
		return sel, errors.New("empty selector")
	}
	if i := strings.IndexAny(s, " \t\n>+~[]:*,()"); i >= 0 {
		return sel, fmt.Errorf("unsupported selector %q: only tag, #id and .class could be combined", s)
	}

	rest := s
	if i := strings.IndexAny(rest, "#."); i != 0 {
		if i < 0 {
			i = len(rest)
		}
		sel.Tag, rest = strings.ToLower(rest[:i]), rest[i:]
	}
	for len(rest) > 0 {
		kind := rest[0]
		rest = rest[1:]
		i := strings.IndexAny(rest, "#.")
		if i < 0 {
			i = len(rest)
		}
		name := rest[:i]
		rest = rest[i:]
		if name == "" {
			return sel, fmt.Errorf("malformed selector %q", s)
		}
		switch kind {
		case '#':
			if sel.ID != "" {
				return sel, fmt.Errorf("selector %q has more than one id", s)
			}
			sel.ID = name
		case '.':
			sel.Classes = append(sel.Classes, name)
		}
	}
	if slices.Contains(voidElements, sel.Tag) {
		return sel, fmt.Errorf("selector %q points to void element which cannot have content", s)
	}
	return sel, nil
}

func (s Selector) String() string {
	var sb strings.Builder
	sb.WriteString(s.Tag)
	if s.ID != "" {
		sb.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteString("." + c)
	}
	return sb.String()
}

// Matches checks if start tag token satisfies selector.
func (s Selector) Matches(tok html.Token) bool {
	if s.Tag != "" && tok.Data != s.Tag {
		return false
	}
	var id string
	var classes []string
	for _, a := range tok.Attr {
		switch a.Key {
		case "id":
			id = a.Val
		case "class":
			classes = strings.Fields(a.Val)
		}
	}
	if s.ID != "" && id != s.ID {
		return false
	}
	for _, c := range s.Classes {
		if !slices.Contains(classes, c) {
			return false
		}
	}
	return true
}

// Locate finds first element matching selector and returns byte span of its
// content: everything between end of the start tag and beginning of the
// matching end tag. Document is never reserialized so bytes outside of the
// span could be preserved exactly.
func (s Selector) Locate(doc []byte) (Span, error) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	var (
		pos   int
		inner = -1
		name  string
		depth int
	)
	for {
		tt := z.Next()
		start := pos
		pos += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return Span{}, fmt.Errorf("unable to tokenize document: %w", err)
			}
			if inner >= 0 {
				return Span{}, fmt.Errorf("%w: element %q is not closed", ErrAnchorNotFound, s)
			}
			return Span{}, fmt.Errorf("%w: no element matches %q", ErrAnchorNotFound, s)

		case html.StartTagToken, html.SelfClosingTagToken:
			if inner >= 0 {
				if tt == html.StartTagToken {
					if tag, _ := z.TagName(); string(tag) == name {
						depth++
					}
				}
				continue
			}
			tok := z.Token()
			if !s.Matches(tok) {
				continue
			}
			if slices.Contains(voidElements, tok.Data) {
				return Span{}, fmt.Errorf("%w: %q matches void element <%s>", ErrAnchorNotFound, s, tok.Data)
			}
			if tt == html.SelfClosingTagToken {
				return Span{}, fmt.Errorf("%w: %q matches self closing element <%s/>", ErrAnchorNotFound, s, tok.Data)
			}
			inner, name, depth = pos, tok.Data, 1

		case html.EndTagToken:
			if inner < 0 {
				continue
			}
			if tag, _ := z.TagName(); string(tag) != name {
				continue
			}
			if depth--; depth == 0 {
				return Span{Start: inner, End: start}, nil
			}
		}
	}
}
