package page

import (
	"errors"
	"strings"
	"testing"

	"dailysent/config"
)

const (
	marker    = "<!-- 여기 아래에 자동 삽입됨 -->"
	endMarker = "<!-- 자동 삽입 끝 -->"
)

func markerAnchor(t *testing.T) *Anchor {
	t.Helper()
	a, err := NewAnchor(&config.AnchorConfig{Kind: config.AnchorKindMarker, Marker: marker, EndMarker: endMarker})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func selectorAnchor(t *testing.T, sel string) *Anchor {
	t.Helper()
	a, err := NewAnchor(&config.AnchorConfig{Kind: config.AnchorKindSelector, Selector: sel})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestMarker_FirstRunAddsEndMarker(t *testing.T) {
	doc := "<html><head><style>body{}</style></head><body>\n" + marker + "\n<footer>f</footer></body></html>"
	a := markerAnchor(t)

	out, err := a.Replace([]byte(doc), []byte("<section>one</section>\n"))
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	want := "<html><head><style>body{}</style></head><body>\n" + marker + "\n<section>one</section>\n" + endMarker + "\n<footer>f</footer></body></html>"
	if string(out) != want {
		t.Errorf("Replace() =\n%s\nwant\n%s", out, want)
	}

	// second run replaces, does not accumulate
	again, err := a.Replace(out, []byte("<section>two</section>"))
	if err != nil {
		t.Fatal(err)
	}
	want = strings.Replace(want, "one", "two", 1)
	if string(again) != want {
		t.Errorf("second Replace() =\n%s\nwant\n%s", again, want)
	}

	// same fragment, same document
	third, _ := a.Replace(again, []byte("<section>two</section>"))
	if string(third) != string(again) {
		t.Error("replacing with identical fragment changed document")
	}

	content, err := a.Content(again)
	if err != nil || string(content) != "<section>two</section>" {
		t.Errorf("Content() = %q, %v", content, err)
	}
}

func TestMarker_NotFound(t *testing.T) {
	_, err := markerAnchor(t).Replace([]byte("<html><body></body></html>"), []byte("x"))
	if !errors.Is(err, ErrAnchorNotFound) {
		t.Errorf("Replace() error = %v, want ErrAnchorNotFound", err)
	}
}

func TestSelector_Replace(t *testing.T) {
	doc := `<!DOCTYPE html>
<html>
<head><script>var s = "<div id='daily'>fake</div>";</script></head>
<body>
  <div class="wrapper">
    <section id="daily" class="post main">
      <div>old <div>nested</div></div>
      <p>old</p>
    </section>
  </div>
  <section id="other">untouched &amp; kept</section>
</body>
</html>`

	a := selectorAnchor(t, "section#daily.post")
	out, err := a.Replace([]byte(doc), []byte("<h3>1. New</h3>"))
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	result := string(out)

	if !strings.Contains(result, `<section id="daily" class="post main">`+"\n<h3>1. New</h3>\n</section>") {
		t.Errorf("content not replaced:\n%s", result)
	}
	if strings.Contains(result, "nested") {
		t.Errorf("old content survived:\n%s", result)
	}
	// bytes outside of the span stay as they were, entities included
	if !strings.Contains(result, `<script>var s = "<div id='daily'>fake</div>";</script>`) {
		t.Errorf("script text changed:\n%s", result)
	}
	if !strings.HasSuffix(result, "  </div>\n  <section id=\"other\">untouched &amp; kept</section>\n</body>\n</html>") {
		t.Errorf("tail changed:\n%s", result)
	}
}

func TestSelector_Locate(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		doc      string
		want     string
		err      bool
	}{
		{"by tag", "main", "<body><main>x</main></body>", "x", false},
		{"by class", ".a.b", `<div class="a">1</div><div class="b a">2</div>`, "2", false},
		{"nested same tag", "div#d", `<div id="d"><div>in</div>tail</div><div>after</div>`, "<div>in</div>tail", false},
		{"upper case tags", "section", "<SECTION>x</SECTION>", "x", false},
		{"empty", "#e", `<p id="e"></p>`, "", false},
		{"missing", "#nope", "<div></div>", "", true},
		{"unclosed", "#u", `<div id="u"><p>text`, "", true},
		{"self closing", "#s", `<div id="s"/>`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSelector(tt.selector)
			if err != nil {
				t.Fatal(err)
			}
			span, err := sel.Locate([]byte(tt.doc))
			if tt.err {
				if !errors.Is(err, ErrAnchorNotFound) {
					t.Errorf("Locate() error = %v, want ErrAnchorNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			if got := tt.doc[span.Start:span.End]; got != tt.want {
				t.Errorf("Locate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"nav#menu", "nav#menu", false},
		{"DIV.a.b", "div.a.b", false},
		{"#id", "#id", false},
		{".c", ".c", false},
		{"", "", true},
		{"nav > ul", "", true},
		{"a[href]", "", true},
		{"#a#b", "", true},
		{"div.", "", true},
		{"img#logo", "", true},
	}
	for _, tt := range tests {
		sel, err := ParseSelector(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("ParseSelector(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSelector(%q) error = %v", tt.in, err)
			continue
		}
		if sel.String() != tt.want {
			t.Errorf("ParseSelector(%q) = %q, want %q", tt.in, sel, tt.want)
		}
	}
}

func TestNewAnchor_Errors(t *testing.T) {
	if _, err := NewAnchor(&config.AnchorConfig{Kind: config.AnchorKindMarker, Marker: marker}); err == nil {
		t.Error("marker anchor without end marker must fail")
	}
	if _, err := NewAnchor(&config.AnchorConfig{Kind: config.AnchorKindSelector, Selector: "ul li"}); err == nil {
		t.Error("complex selector must fail")
	}
}
