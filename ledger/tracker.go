// Package ledger keeps track of published entries so they are never used
// twice.
package ledger

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"dailysent/config"
	"dailysent/source"
	"dailysent/stage"
)

// Tracker decides which entries could be published and remembers published
// ones. Nothing is persisted directly, changes are staged to be committed
// with the rest of the run outputs.
type Tracker interface {
	// Select returns first n usable entries in source order. When there are
	// not enough of them error wraps source.ErrNotEnoughEntries.
	Select(entries []source.Entry, n int) ([]source.Entry, error)
	// Used reports if entry was already published.
	Used(e source.Entry) bool
	// Dedup reports if entries repeating English sentence of an earlier entry
	// are never selected.
	Dedup() bool
	// Stage records selected entries as published on date.
	Stage(b *stage.Batch, date time.Time, selected []source.Entry) error
	Close() error
}

// Open returns tracker for configured selection policy. Path is ledger
// location already resolved against site directory, it is not used by queue
// policy.
func Open(policy config.DedupPolicy, conf *config.LedgerConfig, path string, src *source.Source, log *zap.Logger) (Tracker, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch policy {
	case config.DedupPolicyHash:
		var st store
		switch conf.Format {
		case config.LedgerFormatSqlite:
			st = &sqliteStore{path: path}
		default:
			st = &jsonStore{path: path}
		}
		t, err := newHashTracker(st, log)
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.DedupPolicyQueue:
		if src == nil {
			return nil, fmt.Errorf("queue policy requires sentence source")
		}
		return &QueueTracker{src: src, log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported selection policy %q", policy)
	}
}
