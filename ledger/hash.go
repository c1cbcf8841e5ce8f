package ledger

import (
	"time"

	"go.uber.org/zap"

	"dailysent/source"
	"dailysent/stage"
)

// store is persistent set of keys.
type store interface {
	// load returns known keys in the order they were added.
	load() ([]string, error)
	// stage arranges for keys to be added on commit, known are all keys
	// including new ones.
	stage(b *stage.Batch, date time.Time, added, known []string) error
	close() error
	String() string
}

// HashTracker is content addressed: entry is used when key of its English
// sentence is in the ledger. Source file could be edited and reordered
// freely.
type HashTracker struct {
	st    store
	keys  []string
	known map[string]struct{}
	log   *zap.Logger
}

func newHashTracker(st store, log *zap.Logger) (*HashTracker, error) {
	keys, err := st.load()
	if err != nil {
		return nil, err
	}
	t := &HashTracker{st: st, keys: keys, known: make(map[string]struct{}, len(keys)), log: log}
	for _, k := range keys {
		t.known[k] = struct{}{}
	}
	log.Debug("Ledger loaded", zap.Stringer("ledger", st), zap.Int("keys", len(keys)))
	return t, nil
}

// Len returns number of keys in the ledger.
func (t *HashTracker) Len() int {
	return len(t.keys)
}

// Dedup is true, entries are addressed by content.
func (t *HashTracker) Dedup() bool {
	return true
}

func (t *HashTracker) Used(e source.Entry) bool {
	_, ok := t.known[e.Key()]
	return ok
}

// Select skips used entries and repeated sentences inside the source itself.
func (t *HashTracker) Select(entries []source.Entry, n int) ([]source.Entry, error) {
	seen := make(map[string]struct{}, n)
	return source.First(entries, n, func(e source.Entry) bool {
		k := e.Key()
		if _, ok := t.known[k]; ok {
			return true
		}
		if _, ok := seen[k]; ok {
			t.log.Debug("Skipping repeated sentence", zap.Stringer("entry", e))
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}

func (t *HashTracker) Stage(b *stage.Batch, date time.Time, selected []source.Entry) error {
	added := make([]string, 0, len(selected))
	for _, e := range selected {
		k := e.Key()
		if _, ok := t.known[k]; ok {
			continue
		}
		added = append(added, k)
	}
	known := append(append(make([]string, 0, len(t.keys)+len(added)), t.keys...), added...)
	if err := t.st.stage(b, date, added, known); err != nil {
		return err
	}
	t.log.Debug("Ledger update staged", zap.Stringer("ledger", t.st), zap.Int("added", len(added)), zap.Int("total", len(known)))
	return nil
}

func (t *HashTracker) Close() error {
	return t.st.close()
}
