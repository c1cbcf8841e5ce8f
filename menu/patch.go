package menu

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	yearAttr  = "data-year"
	monthAttr = "data-month"
	dayAttr   = "data-date"
)

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// hasHref reports if any link under n points to href.
func hasHref(n *html.Node, href string) bool {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		if v, ok := attr(n, "href"); ok && strings.TrimSpace(v) == href {
			return true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasHref(c, href) {
			return true
		}
	}
	return false
}

func childElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

// keyedItem returns list item child of list with attribute key set to val.
func keyedItem(list *html.Node, key, val string) *html.Node {
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		if v, ok := attr(c, key); ok && v == val {
			return c
		}
	}
	return nil
}

// openerItem finds or creates list item for year or month and returns its
// nested list.
func openerItem(list *html.Node, key, val, label string) (*html.Node, bool) {
	if li := keyedItem(list, key, val); li != nil {
		if ul := childElement(li, atom.Ul); ul != nil {
			return ul, false
		}
		ul := element("ul")
		li.AppendChild(ul)
		return ul, false
	}
	li := element("li", key, val)
	span := element("span", "class", "opener")
	span.AppendChild(text(label))
	li.AppendChild(span)
	ul := element("ul")
	li.AppendChild(ul)
	list.AppendChild(li)
	return ul, true
}

// sortItems reorders list items carrying attribute key. Other children keep
// their positions, keyed items are redistributed over keyed slots.
func sortItems(list *html.Node, key string, newestFirst bool) {
	var children, keyed []*html.Node
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
		if c.Type == html.ElementNode && c.DataAtom == atom.Li {
			if _, ok := attr(c, key); ok {
				keyed = append(keyed, c)
			}
		}
	}
	if len(keyed) < 2 {
		return
	}
	sorted := slices.Clone(keyed)
	order(sorted, func(n *html.Node) string { v, _ := attr(n, key); return v }, newestFirst)

	for _, c := range children {
		list.RemoveChild(c)
	}
	i := 0
	for _, c := range children {
		if slices.Contains(keyed, c) {
			c = sorted[i]
			i++
		}
		list.AppendChild(c)
	}
}

// patch adds link to menu content, returns new content and false if link
// was already there.
func (b *Builder) patch(content []byte, link Link) ([]byte, bool, error) {
	ctx := element(b.container())
	nodes, err := html.ParseFragment(bytes.NewReader(content), ctx)
	if err != nil {
		return nil, false, fmt.Errorf("unable to parse menu: %w", err)
	}
	root := element(ctx.Data)
	for _, n := range nodes {
		root.AppendChild(n)
	}

	if hasHref(root, link.Href) {
		return content, false, nil
	}

	list := childElement(root, atom.Ul)
	if list == nil {
		list = element("ul", "class", "menu")
		root.AppendChild(list)
	}

	yearLabel, err := b.labels.Year(link.Date)
	if err != nil {
		return nil, false, err
	}
	monthLabel, err := b.labels.Month(link.Date)
	if err != nil {
		return nil, false, err
	}
	dayLabel, err := b.labels.Day(link.Date)
	if err != nil {
		return nil, false, err
	}

	months, _ := openerItem(list, yearAttr, link.yearKey(), yearLabel)
	days, _ := openerItem(months, monthAttr, link.monthKey(), monthLabel)
	li := element("li", dayAttr, link.dayKey())
	a := element("a", "href", link.Href)
	a.AppendChild(text(dayLabel))
	li.AppendChild(a)
	days.AppendChild(li)

	sortItems(list, yearAttr, b.newestFirst)
	sortItems(months, monthAttr, b.newestFirst)
	sortItems(days, dayAttr, b.newestFirst)

	buf := new(bytes.Buffer)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(buf, c); err != nil {
			return nil, false, fmt.Errorf("unable to render menu: %w", err)
		}
	}
	return buf.Bytes(), true, nil
}
