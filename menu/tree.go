// Package menu maintains year, month and day navigation over archive pages.
package menu

import (
	"bytes"
	"fmt"
	"slices"
	"text/template"
	"time"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"

	"dailysent/archive"
	"dailysent/config"
	"dailysent/utils/debug"
)

// Link points to archive page of a single day. Href is slash separated and
// relative to site root.
type Link struct {
	Date time.Time
	Href string
}

func (l Link) yearKey() string  { return l.Date.Format("2006") }
func (l Link) monthKey() string { return l.Date.Format("2006-01") }
func (l Link) dayKey() string   { return l.Date.Format(time.DateOnly) }

// Labels produce visible text of menu nodes.
type Labels struct {
	year, month, day *template.Template
}

func NewLabels(conf *config.LabelsConfig) (*Labels, error) {
	var (
		l   Labels
		err error
	)
	parse := func(name config.TemplateFieldName, text string) *template.Template {
		if err != nil {
			return nil
		}
		var t *template.Template
		if t, err = template.New(string(name)).Funcs(sprig.FuncMap()).Parse(text); err != nil {
			err = fmt.Errorf("unable to parse template field %s: %w", name, err)
		}
		return t
	}
	l.year = parse(config.YearLabelTemplateFieldName, conf.YearTemplate)
	l.month = parse(config.MonthLabelTemplateFieldName, conf.MonthTemplate)
	l.day = parse(config.DayLabelTemplateFieldName, conf.DayTemplate)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func expand(t *template.Template, date time.Time) (string, error) {
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, archive.NewValues(date)); err != nil {
		return "", fmt.Errorf("unable to expand %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func (l *Labels) Year(date time.Time) (string, error)  { return expand(l.year, date) }
func (l *Labels) Month(date time.Time) (string, error) { return expand(l.month, date) }
func (l *Labels) Day(date time.Time) (string, error)   { return expand(l.day, date) }

type (
	Day struct {
		Key, Label, Href string
	}
	Month struct {
		Key, Label string
		Days       []Day
	}
	Year struct {
		Key, Label string
		Months     []*Month
	}
	// Tree is complete navigation hierarchy.
	Tree struct {
		Years []*Year
	}
)

// Build groups links by year and month. Only first link with particular href
// is used. Nodes on every level are ordered naturally by key, newest first
// if requested.
func Build(links []Link, labels *Labels, newestFirst bool) (*Tree, error) {
	t := &Tree{}
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		if seen[l.Href] {
			continue
		}
		seen[l.Href] = true

		y := find(t.Years, func(y *Year) string { return y.Key }, l.yearKey())
		if y == nil {
			label, err := labels.Year(l.Date)
			if err != nil {
				return nil, err
			}
			y = &Year{Key: l.yearKey(), Label: label}
			t.Years = append(t.Years, y)
		}
		m := find(y.Months, func(m *Month) string { return m.Key }, l.monthKey())
		if m == nil {
			label, err := labels.Month(l.Date)
			if err != nil {
				return nil, err
			}
			m = &Month{Key: l.monthKey(), Label: label}
			y.Months = append(y.Months, m)
		}
		label, err := labels.Day(l.Date)
		if err != nil {
			return nil, err
		}
		m.Days = append(m.Days, Day{Key: l.dayKey(), Label: label, Href: l.Href})
	}

	order(t.Years, func(y *Year) string { return y.Key }, newestFirst)
	for _, y := range t.Years {
		order(y.Months, func(m *Month) string { return m.Key }, newestFirst)
		for _, m := range y.Months {
			order(m.Days, func(d Day) string { return d.Key + "\x00" + d.Href }, newestFirst)
		}
	}
	return t, nil
}

func find[T any](s []*T, key func(*T) string, k string) *T {
	if i := slices.IndexFunc(s, func(e *T) bool { return key(e) == k }); i >= 0 {
		return s[i]
	}
	return nil
}

func order[T any](s []T, key func(T) string, newestFirst bool) {
	slices.SortStableFunc(s, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka == kb:
			return 0
		case natural.Less(ka, kb) != newestFirst:
			return -1
		default:
			return 1
		}
	})
}

// Len returns number of day links in the tree.
func (t *Tree) Len() int {
	n := 0
	for _, y := range t.Years {
		for _, m := range y.Months {
			n += len(m.Days)
		}
	}
	return n
}

// Render produces menu list markup.
func (t *Tree) Render() ([]byte, error) {
	if len(t.Years) == 0 {
		return []byte(`<ul class="menu"></ul>`), nil
	}

	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	root := doc.CreateElement("ul")
	root.CreateAttr("class", "menu")
	for _, y := range t.Years {
		ul := opener(root, "data-year", y.Key, y.Label)
		for _, m := range y.Months {
			days := opener(ul, "data-month", m.Key, m.Label)
			for _, d := range m.Days {
				li := days.CreateElement("li")
				li.CreateAttr("data-date", d.Key)
				a := li.CreateElement("a")
				a.CreateAttr("href", d.Href)
				a.SetText(d.Label)
			}
		}
	}
	doc.Indent(2)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("unable to render menu: %w", err)
	}
	return bytes.TrimSpace(out), nil
}

// opener adds list item with label and nested list, nested list is
// returned.
func opener(parent *etree.Element, attr, key, label string) *etree.Element {
	li := parent.CreateElement("li")
	li.CreateAttr(attr, key)
	span := li.CreateElement("span")
	span.CreateAttr("class", "opener")
	span.SetText(label)
	return li.CreateElement("ul")
}

// Dump returns readable tree presentation for debugging.
func (t *Tree) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "menu: %d year(s), %d day(s)", len(t.Years), t.Len())
	for _, y := range t.Years {
		tw.Line(1, "%s %q", y.Key, y.Label)
		for _, m := range y.Months {
			tw.Line(2, "%s %q", m.Key, m.Label)
			for _, d := range m.Days {
				tw.Line(3, "%s %q", d.Key, d.Label)
				tw.Field(4, "href", d.Href)
			}
		}
	}
	return tw.String()
}
