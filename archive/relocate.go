package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

var refAttributes = map[string]bool{
	"src":    true,
	"href":   true,
	"poster": true,
	"srcset": true,
}

// Relocate prepares page for being moved depth directories down from site
// root: every relative reference in src, href, poster and srcset attributes,
// style attributes and style elements gets "../" prefix for every level.
// Tags without relative references and all other text are kept byte for
// byte. Number of rewritten references is returned.
func Relocate(doc []byte, depth int) ([]byte, int, error) {
	prefix := strings.Repeat("../", depth)
	if prefix == "" {
		return doc, 0, nil
	}

	var (
		out     = bytes.NewBuffer(make([]byte, 0, len(doc)+len(doc)/16))
		z       = html.NewTokenizer(bytes.NewReader(doc))
		count   int
		inStyle bool
	)
	for {
		tt := z.Next()
		raw := z.Raw()

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, 0, fmt.Errorf("unable to tokenize page: %w", err)
			}
			out.Write(raw)
			return out.Bytes(), count, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			rawCopy := bytes.Clone(raw)
			tok := z.Token()
			inStyle = tt == html.StartTagToken && tok.Data == "style"

			changed := 0
			for i, a := range tok.Attr {
				if a.Namespace != "" {
					continue
				}
				var (
					val string
					n   int
				)
				switch {
				case a.Key == "style":
					val, n = relocateCSS(a.Val, prefix)
				case a.Key == "srcset":
					val, n = relocateSrcset(a.Val, prefix)
				case refAttributes[a.Key]:
					if isRelative(a.Val) {
						val, n = prefix+a.Val, 1
					}
				}
				if n > 0 {
					tok.Attr[i].Val = val
					changed += n
				}
			}
			if changed == 0 {
				out.Write(rawCopy)
				continue
			}
			count += changed
			out.WriteString(tok.String())

		case html.TextToken:
			if inStyle {
				text, n := relocateCSS(string(raw), prefix)
				count += n
				out.WriteString(text)
				continue
			}
			out.Write(raw)

		default:
			inStyle = false
			out.Write(raw)
		}
	}
}

// isRelative reports if reference is relative to the page location. Empty
// references, fragments, queries, root relative and absolute URLs are left
// alone.
func isRelative(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "?") || strings.HasPrefix(ref, "/") {
		return false
	}
	// template placeholders of server side includes
	if strings.HasPrefix(ref, "{{") || strings.HasPrefix(ref, "<") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func relocateSrcset(val, prefix string) (string, int) {
	candidates := strings.Split(val, ",")
	count := 0
	for i, c := range candidates {
		fields := strings.Fields(c)
		if len(fields) == 0 || !isRelative(fields[0]) {
			continue
		}
		fields[0] = prefix + fields[0]
		candidates[i] = strings.Join(fields, " ")
		count++
	}
	if count == 0 {
		return val, 0
	}
	for i := range candidates {
		candidates[i] = strings.TrimSpace(candidates[i])
	}
	return strings.Join(candidates, ", "), count
}

// relocateCSS rewrites url(...) tokens of style sheet or declaration list.
func relocateCSS(text, prefix string) (string, int) {
	var (
		sb    strings.Builder
		l     = css.NewLexer(parse.NewInputString(text))
		count int
	)
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if count == 0 {
				return text, 0
			}
			return sb.String(), count
		case css.URLToken:
			if ref, quote, ok := splitURLToken(string(data)); ok && isRelative(ref) {
				sb.WriteString("url(" + quote + prefix + ref + quote + ")")
				count++
				continue
			}
		}
		sb.Write(data)
	}
}

// splitURLToken takes apart url(...) token data returning reference and
// quote character used.
func splitURLToken(s string) (ref, quote string, ok bool) {
	if len(s) < 5 || !strings.EqualFold(s[:4], "url(") || s[len(s)-1] != ')' {
		return "", "", false
	}
	s = strings.TrimSpace(s[4 : len(s)-1])
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], s[:1], true
	}
	return s, "", true
}
