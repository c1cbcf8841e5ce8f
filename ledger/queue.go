package ledger

import (
	"time"

	"go.uber.org/zap"

	"dailysent/source"
	"dailysent/stage"
)

// QueueTracker consumes entries from the head of the source: published
// entries are removed from the source file itself, no ledger is kept.
type QueueTracker struct {
	src *source.Source
	log *zap.Logger
}

// Used is always false, published entries are no longer in the source.
func (t *QueueTracker) Used(source.Entry) bool {
	return false
}

// Dedup is false, repeated sentences are published in turn.
func (t *QueueTracker) Dedup() bool {
	return false
}

func (t *QueueTracker) Select(entries []source.Entry, n int) ([]source.Entry, error) {
	return source.First(entries, n, nil)
}

// Stage replaces source file with its unconsumed remainder.
func (t *QueueTracker) Stage(b *stage.Batch, _ time.Time, selected []source.Entry) error {
	rest, err := t.src.Remainder(selected)
	if err != nil {
		return err
	}
	b.Write(t.src.Path, rest)
	t.log.Debug("Source rewrite staged", zap.String("path", t.src.Path), zap.Int("consumed", len(selected)), zap.Int("size", len(rest)))
	return nil
}

func (t *QueueTracker) Close() error {
	return nil
}
