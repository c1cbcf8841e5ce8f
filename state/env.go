// Package state defines shared program state.
package state

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dailysent/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// RunID identifies single program invocation in logs and reports.
	RunID string

	// used by publish subcommand
	SiteDir string
	Date    time.Time
	DryRun  bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		RunID: uuid.NewString(),
	}
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Today returns current date in the site time zone truncated to midnight.
func (e *LocalEnv) Today() time.Time {
	loc := time.Local
	if e.Cfg != nil {
		loc = e.Cfg.Location()
	}
	y, m, d := time.Now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SitePath resolves configured path against site directory. Absolute paths
// are returned as is.
func (e *LocalEnv) SitePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.SiteDir, filepath.FromSlash(p))
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
