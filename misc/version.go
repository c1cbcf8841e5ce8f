// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set by linker with -ldflags "-X dailysent/misc.version=...".
var (
	version = "dev"
	gitHash = ""
)

const appName = "dailysent"

// GetAppName returns program name without extension. When binary was renamed
// we still want to have predictable names for logs and reports.
func GetAppName() string {
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	if len(name) == 0 || strings.HasSuffix(name, ".test") {
		return appName
	}
	return name
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
