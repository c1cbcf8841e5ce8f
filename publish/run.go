package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dailysent/source"
	"dailysent/state"
)

// PrepareSite sets site directory from the first command argument or
// working directory.
func PrepareSite(env *state.LocalEnv, cmd *cli.Command) error {
	dir := cmd.Args().Get(0)
	if len(dir) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("unable to access site directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("site directory %s is not a directory", dir)
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many site directories", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	env.SiteDir = dir
	return nil
}

// Run is publish command action.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("publish")

	if err := PrepareSite(env, cmd); err != nil {
		return err
	}

	env.Date = env.Today()
	if d := cmd.String("date"); len(d) > 0 {
		date, err := time.ParseInLocation(time.DateOnly, d, env.Cfg.Location())
		if err != nil {
			return fmt.Errorf("bad publication date %q: %w", d, err)
		}
		env.Date = date
	}
	env.DryRun = cmd.Bool("dry-run")

	log.Info("Publishing starting",
		zap.String("site", env.SiteDir),
		zap.String("date", env.Date.Format(time.DateOnly)),
		zap.Stringer("policy", env.Cfg.Selection.Policy),
		zap.Bool("dry-run", env.DryRun))
	defer func(start time.Time) {
		log.Info("Publishing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := Publish(ctx, env, Options{Date: env.Date, Count: int(cmd.Int("count")), DryRun: env.DryRun})
	if errors.Is(err, source.ErrNotEnoughEntries) {
		log.Warn("Not enough new entries, nothing was published", zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.Int("entries", len(res.Selected)), zap.Int("files", len(res.Files))}
	if len(res.Archive) > 0 {
		fields = append(fields, zap.String("archive", res.Archive), zap.Bool("menu updated", res.MenuAdded))
	}
	if env.DryRun {
		log.Info("Dry run, nothing was written", fields...)
	} else {
		log.Info("Published", fields...)
	}
	return nil
}

// RunMenu is menu command action.
func RunMenu(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("menu")

	if err := PrepareSite(env, cmd); err != nil {
		return err
	}
	env.DryRun = cmd.Bool("dry-run")

	tree, err := RebuildMenu(ctx, env, env.DryRun)
	if err != nil {
		return err
	}
	if cmd.Bool("print") {
		log.Info("Menu tree\n" + tree.Dump())
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("menu.txt", []byte(tree.Dump()))
	}
	log.Info("Menu rebuilt", zap.Int("years", len(tree.Years)), zap.Int("days", tree.Len()), zap.Bool("dry-run", env.DryRun))
	return nil
}
