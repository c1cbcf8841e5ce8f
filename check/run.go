package check

import (
	"context"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dailysent/ledger"
	"dailysent/publish"
	"dailysent/source"
	"dailysent/state"
)

// Run is check command action.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")
	cfg := env.Cfg

	if err := publish.PrepareSite(env, cmd); err != nil {
		return err
	}

	src, err := source.Load(env.SitePath(cfg.Source.Path), &cfg.Source, env.Log.Named("source"))
	if err != nil {
		return err
	}
	tracker, err := ledger.Open(cfg.Selection.Policy, &cfg.Ledger, env.SitePath(cfg.Ledger.Path), src, env.Log.Named("ledger"))
	if err != nil {
		return err
	}
	defer tracker.Close()

	auditor, err := NewAuditor()
	if err != nil {
		return err
	}
	r := auditor.Audit(src, tracker, cfg.Selection.Count)

	for _, e := range r.Duplicates {
		log.Warn("Repeated sentence will never be published", zap.Stringer("entry", e))
	}
	for _, e := range r.MultiSentence {
		log.Warn("English field has more than one sentence", zap.Stringer("entry", e))
	}
	log.Info("Source checked",
		zap.String("source", src.Path),
		zap.Stringer("policy", cfg.Selection.Policy),
		zap.Int("entries", r.Entries),
		zap.Int("dropped", r.Dropped),
		zap.Int("duplicates", len(r.Duplicates)),
		zap.Int("used", r.Used),
		zap.Int("remaining", r.Remaining),
		zap.Int("days", r.Days))
	if r.Days == 0 {
		log.Warn("Not enough entries for the next publication", zap.Int("need", cfg.Selection.Count), zap.Int("have", r.Remaining))
	}
	return nil
}
