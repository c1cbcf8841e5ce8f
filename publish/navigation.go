package publish

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"dailysent/menu"
	"dailysent/stage"
	"dailysent/state"
)

// RebuildMenu regenerates navigation of the live page from archive directory
// without publishing anything.
func RebuildMenu(ctx context.Context, env *state.LocalEnv, dryRun bool) (*menu.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := env.Cfg
	builder, err := menu.New(&cfg.Menu, env.Log.Named("menu"))
	if err != nil {
		return nil, err
	}

	indexPath := env.SitePath(cfg.Site.Index)
	live, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read site page: %w", err)
	}

	links, err := builder.Scan(env.SiteDir, cfg.Menu.ScanDir)
	if err != nil {
		return nil, err
	}
	env.Log.Debug("Archive scanned", zap.String("dir", env.SitePath(cfg.Menu.ScanDir)), zap.Int("pages", len(links)))

	updated, content, tree, err := builder.Rebuild(live, links)
	if err != nil {
		return nil, err
	}

	b := stage.New(env.Log.Named("stage"))
	b.Write(indexPath, updated)
	if len(cfg.Menu.FragmentPath) > 0 {
		b.Write(env.SitePath(cfg.Menu.FragmentPath), append(content, '\n'))
	}
	report(env, b)

	if dryRun {
		b.DryRun()
		return tree, nil
	}
	if err := b.Commit(); err != nil {
		return nil, fmt.Errorf("unable to commit menu: %w", err)
	}
	return tree, nil
}
