// Package render turns selected entries into HTML fragment.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"dailysent/config"
	"dailysent/source"
)

//go:embed default.html.tmpl
var defaultTemplate string

const maxIDLength = 48

// EntryValues is a single entry as seen by template.
type EntryValues struct {
	// Number is 1 based position in the publication.
	Number        int
	ID            string
	English       string
	Translation   string
	Pronunciation string
	Spare         string
}

// Values holds variables available for template expansion.
type Values struct {
	Title   string
	Date    string
	Time    time.Time
	Entries []EntryValues
}

// Renderer is a pure function of date and entries. Entry text is inserted
// verbatim, markup in the source ends up in the page as is.
type Renderer struct {
	title string
	tmpl  *template.Template
	log   *zap.Logger
}

// New prepares renderer from configured template or from embedded default
// one.
func New(conf *config.RenderConfig, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	name, text := "default", defaultTemplate
	if len(conf.TemplatePath) > 0 {
		data, err := os.ReadFile(conf.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("unable to read template from %q: %w", conf.TemplatePath, err)
		}
		name, text = conf.TemplatePath, string(data)
	}

	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	log.Debug("Renderer ready", zap.String("template", name))
	return &Renderer{title: conf.Title, tmpl: tmpl, log: log}, nil
}

func (r *Renderer) Render(date time.Time, entries []source.Entry) ([]byte, error) {
	values := Values{
		Title:   r.title,
		Date:    date.Format(time.DateOnly),
		Time:    date,
		Entries: make([]EntryValues, 0, len(entries)),
	}
	for i, e := range entries {
		values.Entries = append(values.Entries, EntryValues{
			Number:        i + 1,
			ID:            entryID(i+1, e.English),
			English:       e.English,
			Translation:   e.Translation,
			Pronunciation: e.Pronunciation,
			Spare:         e.Spare,
		})
	}

	buf := new(bytes.Buffer)
	if err := r.tmpl.Execute(buf, values); err != nil {
		return nil, fmt.Errorf("unable to render entries: %w", err)
	}
	r.log.Debug("Entries rendered", zap.Int("entries", len(entries)), zap.Int("size", buf.Len()))
	return buf.Bytes(), nil
}

// entryID builds anchor id which stays the same for the same sentence at the
// same position.
func entryID(n int, english string) string {
	id := slug.Make(english)
	if len(id) > maxIDLength {
		id = id[:maxIDLength]
		if i := strings.LastIndexByte(id, '-'); i > 0 {
			id = id[:i]
		}
	}
	prefix := "s" + strconv.Itoa(n)
	if id == "" {
		return prefix
	}
	return prefix + "-" + id
}
