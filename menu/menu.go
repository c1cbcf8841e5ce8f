package menu

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"dailysent/config"
	"dailysent/page"
)

// Builder updates navigation region of the page.
type Builder struct {
	sel         page.Selector
	labels      *Labels
	newestFirst bool
	log         *zap.Logger
}

func New(conf *config.MenuConfig, log *zap.Logger) (*Builder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sel, err := page.ParseSelector(conf.Selector)
	if err != nil {
		return nil, fmt.Errorf("bad menu selector: %w", err)
	}
	labels, err := NewLabels(&conf.Labels)
	if err != nil {
		return nil, err
	}
	return &Builder{sel: sel, labels: labels, newestFirst: conf.NewestFirst, log: log}, nil
}

func (b *Builder) container() string {
	if b.sel.Tag != "" {
		return b.sel.Tag
	}
	return "div"
}

// Patch adds day link to the navigation of doc keeping everything else as
// it was. When link with the same href is already present document is
// returned unchanged. Resulting navigation content is returned as well.
func (b *Builder) Patch(doc []byte, link Link) (out, content []byte, err error) {
	span, err := b.sel.Locate(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to find menu: %w", err)
	}
	current := doc[span.Start:span.End]

	content, added, err := b.patch(current, link)
	if err != nil {
		return nil, nil, err
	}
	if !added {
		b.log.Debug("Menu already has link", zap.String("href", link.Href))
		return doc, bytes.TrimSpace(current), nil
	}
	b.log.Debug("Menu link added", zap.String("href", link.Href))
	return page.Splice(doc, span, content, nil), content, nil
}

// Rebuild replaces navigation of doc with menu built from links. Previous
// navigation content is ignored.
func (b *Builder) Rebuild(doc []byte, links []Link) (out, content []byte, tree *Tree, err error) {
	span, err := b.sel.Locate(doc)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to find menu: %w", err)
	}
	if tree, err = Build(links, b.labels, b.newestFirst); err != nil {
		return nil, nil, nil, err
	}
	if content, err = tree.Render(); err != nil {
		return nil, nil, nil, err
	}
	b.log.Debug("Menu rebuilt", zap.Int("years", len(tree.Years)), zap.Int("days", tree.Len()))
	return page.Splice(doc, span, content, nil), content, tree, nil
}

// Tree builds navigation tree from links.
func (b *Builder) Tree(links []Link) (*Tree, error) {
	return Build(links, b.labels, b.newestFirst)
}

// Scan looks for archive pages under dir (relative to site root): html files
// named after the date they were published on. Missing directory means no
// archive yet. Other html files are reported and left out of the menu.
func (b *Builder) Scan(siteDir, dir string) ([]Link, error) {
	root := filepath.Join(siteDir, dir)
	var links []Link
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
		if err != nil {
			b.log.Warn("Archive page is not named after date, skipping", zap.String("path", path))
			return nil
		}
		rel, err := filepath.Rel(siteDir, path)
		if err != nil {
			return err
		}
		links = append(links, Link{Date: date, Href: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan archive %s: %w", root, err)
	}
	return links, nil
}
