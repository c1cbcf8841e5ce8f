// Package page updates generated region of the live site page.
package page

import (
	"bytes"
	"errors"
	"fmt"

	"dailysent/config"
)

// ErrAnchorNotFound is returned when document does not have the landmark
// generated content should go to. Nothing should be written then.
var ErrAnchorNotFound = errors.New("anchor not found")

// Anchor describes where generated content lives in the page.
type Anchor struct {
	Kind config.AnchorKind
	// Marker and EndMarker are literal strings (normally HTML comments)
	// surrounding generated content.
	Marker    string
	EndMarker string
	Selector  Selector
}

func NewAnchor(conf *config.AnchorConfig) (*Anchor, error) {
	a := &Anchor{Kind: conf.Kind, Marker: conf.Marker, EndMarker: conf.EndMarker}
	switch conf.Kind {
	case config.AnchorKindMarker:
		if a.Marker == "" || a.EndMarker == "" {
			return nil, errors.New("marker anchor requires both marker and end marker")
		}
	case config.AnchorKindSelector:
		sel, err := ParseSelector(conf.Selector)
		if err != nil {
			return nil, err
		}
		a.Selector = sel
	default:
		return nil, fmt.Errorf("unsupported anchor kind %q", conf.Kind)
	}
	return a, nil
}

func (a *Anchor) String() string {
	if a.Kind == config.AnchorKindSelector {
		return a.Selector.String()
	}
	return a.Marker
}

// Locate returns span of currently generated content. For marker anchor
// without end marker in the document span is empty and positioned right
// after the marker, missing end marker is added by Replace.
func (a *Anchor) Locate(doc []byte) (Span, error) {
	if a.Kind == config.AnchorKindSelector {
		return a.Selector.Locate(doc)
	}

	i := bytes.Index(doc, []byte(a.Marker))
	if i < 0 {
		return Span{}, fmt.Errorf("%w: marker %q", ErrAnchorNotFound, a.Marker)
	}
	start := i + len(a.Marker)
	j := bytes.Index(doc[start:], []byte(a.EndMarker))
	if j < 0 {
		return Span{Start: start, End: start}, nil
	}
	return Span{Start: start, End: start + j}, nil
}

// Content returns currently generated content.
func (a *Anchor) Content(doc []byte) ([]byte, error) {
	span, err := a.Locate(doc)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(doc[span.Start:span.End]), nil
}

// Replace substitutes generated content with fragment. Previous content is
// dropped wholesale, everything outside of it is kept byte for byte.
// Replacing with the same fragment again produces identical document.
func (a *Anchor) Replace(doc, fragment []byte) ([]byte, error) {
	span, err := a.Locate(doc)
	if err != nil {
		return nil, err
	}

	var tail []byte
	if a.Kind == config.AnchorKindMarker && !bytes.Contains(doc[span.Start:], []byte(a.EndMarker)) {
		tail = []byte(a.EndMarker)
	}
	return Splice(doc, span, fragment, tail), nil
}

// Splice puts fragment on its own lines in place of span. Extra bytes are
// added after fragment.
func Splice(doc []byte, span Span, fragment, extra []byte) []byte {
	fragment = bytes.Trim(fragment, "\r\n")

	out := make([]byte, 0, len(doc)-(span.End-span.Start)+len(fragment)+len(extra)+2)
	out = append(out, doc[:span.Start]...)
	out = append(out, '\n')
	out = append(out, fragment...)
	out = append(out, '\n')
	out = append(out, extra...)
	out = append(out, doc[span.End:]...)
	return out
}
