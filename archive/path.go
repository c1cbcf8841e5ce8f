// Package archive produces dated copies of the live page.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"dailysent/config"
)

// Values is a struct that holds variables we make available for archive name
// template expansion.
type Values struct {
	Year  string
	Month string
	Day   string
	// Date is YYYY-MM-DD.
	Date string
	Time time.Time
}

func NewValues(date time.Time) Values {
	return Values{
		Year:  date.Format("2006"),
		Month: date.Format("01"),
		Day:   date.Format("02"),
		Date:  date.Format(time.DateOnly),
		Time:  date,
	}
}

// Archiver names archive pages and prepares their content.
type Archiver struct {
	tmpl    *template.Template
	rewrite bool
	log     *zap.Logger
}

func New(conf *config.ArchiveConfig, log *zap.Logger) (*Archiver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := template.New(string(config.ArchiveNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(conf.NameTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.ArchiveNameTemplateFieldName, err)
	}
	return &Archiver{tmpl: tmpl, rewrite: conf.RewriteAssets, log: log}, nil
}

// Path returns slash separated archive page path relative to site root.
// Every path segment is cleaned, resulting path never leaves site root.
func (a *Archiver) Path(date time.Time) (string, error) {
	buf := new(bytes.Buffer)
	if err := a.tmpl.Execute(buf, NewValues(date)); err != nil {
		return "", fmt.Errorf("unable to expand archive name: %w", err)
	}
	name := strings.ReplaceAll(strings.TrimSpace(buf.String()), `\`, "/")
	if !isSafePath(name) {
		return "", fmt.Errorf("archive name %q is absolute or leaves site directory", name)
	}

	var segments []string
	for _, s := range strings.Split(name, "/") {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, config.CleanFileName(s))
	}
	if len(segments) == 0 {
		return "", errors.New("archive name is empty")
	}
	return path.Join(segments...), nil
}

// Depth returns number of directories between site root and page.
func Depth(rel string) int {
	return strings.Count(path.Clean(rel), "/")
}

// Page returns content of archive page at rel for the live page doc.
func (a *Archiver) Page(doc []byte, rel string) ([]byte, error) {
	depth := Depth(rel)
	if !a.rewrite || depth == 0 {
		return doc, nil
	}
	out, n, err := Relocate(doc, depth)
	if err != nil {
		return nil, err
	}
	a.log.Debug("Relative references relocated", zap.String("page", rel), zap.Int("depth", depth), zap.Int("references", n))
	return out, nil
}

// isSafePath returns false for paths that could escape site directory:
// absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || (len(name) > 1 && name[1] == ':') {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
