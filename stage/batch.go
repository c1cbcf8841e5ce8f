// Package stage collects all outputs of a run in memory so nothing is written
// unless every step succeeded.
package stage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// File is a single staged write.
type File struct {
	Path string
	Data []byte
	// Existed is true when file was present at the moment it was staged.
	Existed bool
	// Unchanged is true when staged content is identical to what is on disk.
	Unchanged bool
}

type action struct {
	name string
	fn   func() error
}

// Batch is an ordered set of pending file writes and deferred actions.
// Staging the same path twice replaces earlier content but keeps original
// position.
type Batch struct {
	files   []*File
	actions []action
	log     *zap.Logger
}

func New(log *zap.Logger) *Batch {
	if log == nil {
		log = zap.NewNop()
	}
	return &Batch{log: log}
}

// Write stages content for path. Path is cleaned, data is copied.
func (b *Batch) Write(path string, data []byte) {
	path = filepath.Clean(path)

	f := &File{Path: path, Data: bytes.Clone(data)}
	if cur, err := os.ReadFile(path); err == nil {
		f.Existed = true
		f.Unchanged = bytes.Equal(cur, data)
	}

	if i := slices.IndexFunc(b.files, func(e *File) bool { return e.Path == path }); i >= 0 {
		b.log.Debug("Restaging file", zap.String("path", path))
		b.files[i] = f
		return
	}
	b.log.Debug("Staging file", zap.String("path", path), zap.Int("size", len(data)), zap.Bool("exists", f.Existed))
	b.files = append(b.files, f)
}

// Staged returns content staged for path, if any. It lets later steps see
// output of earlier ones before anything is committed.
func (b *Batch) Staged(path string) ([]byte, bool) {
	path = filepath.Clean(path)
	for _, f := range b.files {
		if f.Path == path {
			return f.Data, true
		}
	}
	return nil, false
}

// Defer registers action to run after all files were written successfully.
func (b *Batch) Defer(name string, fn func() error) {
	b.actions = append(b.actions, action{name: name, fn: fn})
}

// Files returns staged files in insertion order.
func (b *Batch) Files() []*File {
	return slices.Clone(b.files)
}

func (b *Batch) Len() int {
	return len(b.files) + len(b.actions)
}

// DryRun logs what Commit would do.
func (b *Batch) DryRun() {
	for _, f := range b.files {
		b.log.Info("Would write", zap.String("path", f.Path), zap.Int("size", len(f.Data)),
			zap.Bool("exists", f.Existed), zap.Bool("unchanged", f.Unchanged))
	}
	for _, a := range b.actions {
		b.log.Info("Would run", zap.String("action", a.name))
	}
}

// Commit writes staged files in order, each through temporary file in the
// same directory and rename, so every single file is either old or new.
// Deferred actions only run when all files were written. All errors are
// reported.
func (b *Batch) Commit() (err error) {
	for _, f := range b.files {
		if f.Unchanged {
			b.log.Debug("Skipping unchanged file", zap.String("path", f.Path))
			continue
		}
		if e := writeFile(f.Path, f.Data); e != nil {
			err = multierr.Append(err, e)
			continue
		}
		b.log.Debug("File written", zap.String("path", f.Path), zap.Int("size", len(f.Data)))
	}
	if err != nil {
		return err
	}
	for _, a := range b.actions {
		if e := a.fn(); e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", a.name, e))
			continue
		}
		b.log.Debug("Action completed", zap.String("action", a.name))
	}
	return err
}

func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create directory for %s: %w", path, err)
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temporary file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("unable to set mode of %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}
	return nil
}
