package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"dailysent/stage"
)

// jsonStore keeps keys as JSON array of strings, oldest first.
type jsonStore struct {
	path string
}

func (s *jsonStore) String() string {
	return s.path
}

func (s *jsonStore) load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read ledger: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("unable to parse ledger %s: %w", s.path, err)
	}
	return keys, nil
}

func (s *jsonStore) stage(b *stage.Batch, _ time.Time, _, known []string) error {
	if known == nil {
		known = []string{}
	}
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(known); err != nil {
		return fmt.Errorf("unable to encode ledger: %w", err)
	}
	b.Write(s.path, buf.Bytes())
	return nil
}

func (s *jsonStore) close() error {
	return nil
}
