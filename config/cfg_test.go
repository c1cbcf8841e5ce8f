package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Site.Index != "index.html" {
		t.Errorf("Site.Index = %q, want index.html", cfg.Site.Index)
	}
	if cfg.Source.Path != "english_lines.txt" {
		t.Errorf("Source.Path = %q", cfg.Source.Path)
	}
	if cfg.Source.LinesPerEntry != 3 || !cfg.Source.SkipBlankLines {
		t.Errorf("Source grouping = %d/%v, want 3/true", cfg.Source.LinesPerEntry, cfg.Source.SkipBlankLines)
	}
	if cfg.Selection.Count != 10 || cfg.Selection.Policy != DedupPolicyHash {
		t.Errorf("Selection = %+v, want 10 entries by hash", cfg.Selection)
	}
	if cfg.Ledger.Path != "used_sentences.json" || cfg.Ledger.Format != LedgerFormatJson {
		t.Errorf("Ledger = %+v", cfg.Ledger)
	}
	if cfg.Page.Anchor.Kind != AnchorKindMarker || cfg.Page.Anchor.Marker == "" || cfg.Page.Anchor.EndMarker == "" {
		t.Errorf("Page.Anchor = %+v", cfg.Page.Anchor)
	}
	if !cfg.Archive.Enable || cfg.Archive.Order != ArchiveOrderAfter {
		t.Errorf("Archive = %+v", cfg.Archive)
	}
	// template fields must survive configuration processing unexpanded
	if cfg.Archive.NameTemplate != "posts/{{ .Year }}/{{ .Month }}/{{ .Date }}.html" {
		t.Errorf("Archive.NameTemplate = %q", cfg.Archive.NameTemplate)
	}
	if cfg.Menu.Labels.DayTemplate != "{{ .Date }}" {
		t.Errorf("Menu.Labels.DayTemplate = %q", cfg.Menu.Labels.DayTemplate)
	}
	if cfg.Menu.Mode != MenuModePatch || !cfg.Menu.NewestFirst {
		t.Errorf("Menu = %+v", cfg.Menu)
	}
	if cfg.Location() == nil {
		t.Error("Location() returned nil")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
site:
  time_zone: "Asia/Seoul"
source:
  path: "lines.csv"
  format: csv
  csv:
    comma: ";"
    header: true
selection:
  count: 5
  policy: queue
ledger:
  format: sqlite
  path: "ledger.db"
page:
  anchor:
    kind: selector
    selector: "section#daily"
archive:
  order: before
  name_template: "posts/{{ .Date }}.html"
menu:
  mode: rebuild
  fragment_path: "menu.html"
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Source.Format != SourceFormatCsv || cfg.Source.CSV.Comma != ";" || !cfg.Source.CSV.Header {
		t.Errorf("Source = %+v", cfg.Source)
	}
	if cfg.Selection.Count != 5 || cfg.Selection.Policy != DedupPolicyQueue {
		t.Errorf("Selection = %+v", cfg.Selection)
	}
	if cfg.Ledger.Format != LedgerFormatSqlite {
		t.Errorf("Ledger.Format = %v", cfg.Ledger.Format)
	}
	if cfg.Page.Anchor.Kind != AnchorKindSelector || cfg.Page.Anchor.Selector != "section#daily" {
		t.Errorf("Page.Anchor = %+v", cfg.Page.Anchor)
	}
	if cfg.Archive.Order != ArchiveOrderBefore || cfg.Archive.NameTemplate != "posts/{{ .Date }}.html" {
		t.Errorf("Archive = %+v", cfg.Archive)
	}
	if cfg.Menu.Mode != MenuModeRebuild || cfg.Menu.FragmentPath != "menu.html" {
		t.Errorf("Menu = %+v", cfg.Menu)
	}
	if cfg.Location().String() != "Asia/Seoul" {
		t.Errorf("Location() = %s", cfg.Location())
	}
	// values not mentioned in the file keep defaults
	if cfg.Source.LinesPerEntry != 3 {
		t.Errorf("LinesPerEntry = %d, want default 3", cfg.Source.LinesPerEntry)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nsource:\n  path: x\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad enum", "version: 1\nselection:\n  policy: random\n"},
		{"zero count", "version: 1\nselection:\n  count: 0\n"},
		{"bad lines per entry", "version: 1\nsource:\n  lines_per_entry: 5\n"},
		{"bad time zone", "version: 1\nsite:\n  time_zone: Mars/Olympus\n"},
		{"selector anchor without selector", "version: 1\npage:\n  anchor:\n    kind: selector\n    selector: \"\"\n"},
		{"long csv comma", "version: 1\nsource:\n  csv:\n    comma: \";;\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	if _, err := LoadConfiguration("", option); err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Prepared config is not valid: %v", err)
	}

	dumped, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	again, err := unmarshalConfig(dumped, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if again.Selection != cfg.Selection || again.Page != cfg.Page || again.Archive != cfg.Archive {
		t.Error("Dumped config differs from original")
	}
}

func TestEnums_Parse(t *testing.T) {
	if p, err := ParseDedupPolicy("queue"); err != nil || p != DedupPolicyQueue {
		t.Errorf("ParseDedupPolicy(queue) = %v, %v", p, err)
	}
	if _, err := ParseDedupPolicy("lifo"); !errors.Is(err, ErrInvalidDedupPolicy) {
		t.Errorf("ParseDedupPolicy(lifo) error = %v, want ErrInvalidDedupPolicy", err)
	}
	if s := MenuMode(42).String(); s != "MenuMode(42)" {
		t.Errorf("MenuMode(42).String() = %q", s)
	}
	if !ArchiveOrderBefore.IsValid() || ArchiveOrder(7).IsValid() {
		t.Error("ArchiveOrder.IsValid() misbehaves")
	}
}
