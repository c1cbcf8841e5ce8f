// Package publish runs daily publication: selects entries, renders them into
// the live page, archives the page and updates site navigation.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dailysent/archive"
	"dailysent/config"
	"dailysent/ledger"
	"dailysent/menu"
	"dailysent/page"
	"dailysent/render"
	"dailysent/source"
	"dailysent/stage"
	"dailysent/state"
)

// Options are per run parameters which are not part of configuration.
type Options struct {
	Date   time.Time
	Count  int
	DryRun bool
}

// Result describes what was (or would be) done.
type Result struct {
	Selected []source.Entry
	// Archive is slash separated archive page path relative to site root,
	// empty when archiving is disabled.
	Archive string
	// MenuAdded is false when menu already had the link or menu is
	// disabled.
	MenuAdded bool
	Files     []*stage.File
}

// Publish prepares all outputs in memory and commits them only when every
// step succeeded. When source does not have enough unused entries error
// wraps source.ErrNotEnoughEntries and nothing is written.
func Publish(ctx context.Context, env *state.LocalEnv, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := env.Cfg
	log := env.Log.Named("publish")

	count := cfg.Selection.Count
	if opts.Count > 0 {
		count = opts.Count
	}

	src, err := source.Load(env.SitePath(cfg.Source.Path), &cfg.Source, env.Log.Named("source"))
	if err != nil {
		return nil, err
	}
	if src.Dropped > 0 {
		log.Warn("Malformed entries in the source were ignored", zap.String("path", src.Path), zap.Int("dropped", src.Dropped))
	}

	tracker, err := ledger.Open(cfg.Selection.Policy, &cfg.Ledger, env.SitePath(cfg.Ledger.Path), src, env.Log.Named("ledger"))
	if err != nil {
		return nil, err
	}
	defer tracker.Close()

	selected, err := tracker.Select(src.Entries, count)
	if err != nil {
		return nil, err
	}
	for _, e := range selected {
		log.Debug("Selected", zap.Stringer("entry", e))
	}

	renderConf := cfg.Render
	if len(renderConf.TemplatePath) > 0 {
		renderConf.TemplatePath = env.SitePath(renderConf.TemplatePath)
	}
	renderer, err := render.New(&renderConf, env.Log.Named("render"))
	if err != nil {
		return nil, err
	}
	fragment, err := renderer.Render(opts.Date, selected)
	if err != nil {
		return nil, err
	}

	indexPath := env.SitePath(cfg.Site.Index)
	live, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read site page: %w", err)
	}
	anchor, err := page.NewAnchor(&cfg.Page.Anchor)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		b      = stage.New(env.Log.Named("stage"))
		result = &Result{Selected: selected}
		arch   *archive.Archiver
		link   *menu.Link
	)

	if cfg.Archive.Enable {
		if arch, err = archive.New(&cfg.Archive, env.Log.Named("archive")); err != nil {
			return nil, err
		}
		date := opts.Date
		if cfg.Archive.Order == config.ArchiveOrderBefore {
			date = date.AddDate(0, 0, -1)
		}
		if result.Archive, err = arch.Path(date); err != nil {
			return nil, err
		}
		link = &menu.Link{Date: date, Href: result.Archive}
	}

	// live page as it was before today's update goes to the archive
	if arch != nil && cfg.Archive.Order == config.ArchiveOrderBefore {
		data, err := arch.Page(live, result.Archive)
		if err != nil {
			return nil, err
		}
		b.Write(env.SitePath(result.Archive), data)
	}

	updated, err := anchor.Replace(live, fragment)
	if err != nil {
		return nil, err
	}
	log.Debug("Generated content replaced", zap.Stringer("anchor", anchor), zap.Int("size", len(fragment)))

	if cfg.Menu.Enable {
		if link == nil {
			log.Debug("Archive is disabled, menu is left as is")
		} else {
			var content []byte
			if updated, content, result.MenuAdded, err = updateMenu(env, updated, *link); err != nil {
				return nil, err
			}
			if len(cfg.Menu.FragmentPath) > 0 {
				b.Write(env.SitePath(cfg.Menu.FragmentPath), append(content, '\n'))
			}
		}
	}
	b.Write(indexPath, updated)

	// page just published goes to the archive
	if arch != nil && cfg.Archive.Order == config.ArchiveOrderAfter {
		data, err := arch.Page(updated, result.Archive)
		if err != nil {
			return nil, err
		}
		b.Write(env.SitePath(result.Archive), data)
	}

	if err := tracker.Stage(b, opts.Date, selected); err != nil {
		return nil, err
	}
	result.Files = b.Files()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report(env, b)

	if opts.DryRun {
		b.DryRun()
		return result, nil
	}
	if err := b.Commit(); err != nil {
		return nil, fmt.Errorf("unable to commit publication: %w", err)
	}
	return result, nil
}

// updateMenu adds link to the page navigation and returns updated page with
// new navigation content. In rebuild mode navigation is regenerated from
// archive directory, link is added to what was found there since archive
// page is not written yet.
func updateMenu(env *state.LocalEnv, doc []byte, link menu.Link) ([]byte, []byte, bool, error) {
	cfg := env.Cfg
	builder, err := menu.New(&cfg.Menu, env.Log.Named("menu"))
	if err != nil {
		return nil, nil, false, err
	}

	var (
		out, content []byte
		added        = true
	)
	switch cfg.Menu.Mode {
	case config.MenuModeRebuild:
		links, err := builder.Scan(env.SiteDir, cfg.Menu.ScanDir)
		if err != nil {
			return nil, nil, false, err
		}
		if out, content, _, err = builder.Rebuild(doc, append(links, link)); err != nil {
			return nil, nil, false, err
		}
	default:
		if out, content, err = builder.Patch(doc, link); err != nil {
			return nil, nil, false, err
		}
		added = !bytes.Equal(out, doc)
	}
	return out, content, added, nil
}

// report puts inputs and staged outputs into debug report.
func report(env *state.LocalEnv, b *stage.Batch) {
	if env.Rpt == nil {
		return
	}
	for _, f := range b.Files() {
		name := relName(env.SiteDir, f.Path)
		if err := env.Rpt.StoreCopy(filepath.Join("site", "before", name), f.Path); err != nil {
			env.Log.Debug("Unable to put input into report", zap.String("path", f.Path), zap.Error(err))
		}
		env.Rpt.StoreData(filepath.Join("site", "after", name), f.Data)
	}
}

func relName(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return config.CleanFileName(path)
}
