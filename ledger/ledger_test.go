package ledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"dailysent/config"
	"dailysent/source"
	"dailysent/stage"
)

var day = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func parse(t *testing.T, dir, text string) *source.Source {
	t.Helper()
	path := filepath.Join(dir, "english_lines.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	src, err := source.Load(path, &config.SourceConfig{
		Format:         config.SourceFormatText,
		Grouping:       config.GroupingFixed,
		LinesPerEntry:  3,
		SkipBlankLines: true,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	return src
}

func entries(english ...string) string {
	var sb strings.Builder
	for _, e := range english {
		sb.WriteString(e + "\n번역\n발음\n\n")
	}
	return sb.String()
}

func english(entries []source.Entry) string {
	var s []string
	for _, e := range entries {
		s = append(s, e.English)
	}
	return strings.Join(s, ",")
}

func TestHashTracker_JSON(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "used_sentences.json")
	src := parse(t, dir, entries("One.", "Two.", "one.", "Three.", "Four."))
	conf := &config.LedgerConfig{Path: ledgerPath, Format: config.LedgerFormatJson}
	log := zaptest.NewLogger(t)

	tr, err := Open(config.DedupPolicyHash, conf, ledgerPath, src, log)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer tr.Close()

	// "one." repeats "One." and must be skipped
	got, err := tr.Select(src.Entries, 3)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if english(got) != "One.,Two.,Three." {
		t.Errorf("Select() = %s", english(got))
	}

	b := stage.New(log)
	if err := tr.Stage(b, day, got); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if _, err := os.Stat(ledgerPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("ledger written before commit")
	}
	if err := b.Commit(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(ledgerPath)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("ledger is not JSON array: %v\n%s", err, data)
	}
	want := []string{source.Key("One."), source.Key("Two."), source.Key("Three.")}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("ledger = %v, want %v", keys, want)
	}

	// second run sees the ledger
	tr2, err := Open(config.DedupPolicyHash, conf, ledgerPath, src, log)
	if err != nil {
		t.Fatal(err)
	}
	if !tr2.Used(src.Entries[2]) {
		t.Error("case insensitive duplicate is not reported as used")
	}
	got, err = tr2.Select(src.Entries, 2)
	if !errors.Is(err, source.ErrNotEnoughEntries) {
		t.Fatalf("Select() error = %v, want ErrNotEnoughEntries", err)
	}
	if english(got) != "Four." {
		t.Errorf("partial selection = %s", english(got))
	}

	got, err = tr2.Select(src.Entries, 1)
	if err != nil {
		t.Fatal(err)
	}
	b = stage.New(log)
	if err := tr2.Stage(b, day.AddDate(0, 0, 1), got); err != nil {
		t.Fatal(err)
	}
	if err := b.Commit(); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(ledgerPath)
	keys = nil
	_ = json.Unmarshal(data, &keys)
	if len(keys) != 4 || keys[3] != source.Key("Four.") {
		t.Errorf("ledger is not append only: %v", keys)
	}
}

func TestHashTracker_JSONErrors(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "used.json")
	conf := &config.LedgerConfig{Path: ledgerPath, Format: config.LedgerFormatJson}

	// empty file is an empty ledger
	if err := os.WriteFile(ledgerPath, []byte("\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tr, err := Open(config.DedupPolicyHash, conf, ledgerPath, nil, nil)
	if err != nil {
		t.Fatalf("empty ledger error = %v", err)
	}
	if tr.(*HashTracker).Len() != 0 {
		t.Error("empty ledger has keys")
	}

	if err := os.WriteFile(ledgerPath, []byte(`{"not": "array"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(config.DedupPolicyHash, conf, ledgerPath, nil, nil); err == nil {
		t.Error("expected error for malformed ledger")
	}
}

func TestHashTracker_SQLite(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "ledger.db")
	src := parse(t, dir, entries("One.", "Two.", "Three."))
	conf := &config.LedgerConfig{Path: ledgerPath, Format: config.LedgerFormatSqlite}
	log := zaptest.NewLogger(t)

	tr, err := Open(config.DedupPolicyHash, conf, ledgerPath, src, log)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	got, err := tr.Select(src.Entries, 2)
	if err != nil {
		t.Fatal(err)
	}
	b := stage.New(log)
	if err := tr.Stage(b, day, got); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ledgerPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("database created before commit")
	}
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	_ = tr.Close()

	tr, err = Open(config.DedupPolicyHash, conf, ledgerPath, src, log)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()
	if n := tr.(*HashTracker).Len(); n != 2 {
		t.Errorf("ledger keys = %d, want 2", n)
	}
	got, err = tr.Select(src.Entries, 1)
	if err != nil || english(got) != "Three." {
		t.Errorf("Select() = %s, %v", english(got), err)
	}
}

func TestQueueTracker(t *testing.T) {
	dir := t.TempDir()
	src := parse(t, dir, entries("One.", "Two.", "Three."))
	log := zaptest.NewLogger(t)

	tr, err := Open(config.DedupPolicyQueue, &config.LedgerConfig{}, "", src, log)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tr.Select(src.Entries, 2)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Used(got[0]) {
		t.Error("queue tracker reports entry as used")
	}
	b := stage.New(log)
	if err := tr.Stage(b, day, got); err != nil {
		t.Fatal(err)
	}
	if err := b.Commit(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		t.Fatal(err)
	}
	// separator after last consumed entry stays
	if string(data) != "\n"+entries("Three.") {
		t.Errorf("source after consumption = %q", data)
	}

	src = parse(t, dir, string(data))
	if _, err := tr.Select(src.Entries, 2); !errors.Is(err, source.ErrNotEnoughEntries) {
		t.Errorf("Select() error = %v, want ErrNotEnoughEntries", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, err := Open(config.DedupPolicyQueue, &config.LedgerConfig{}, "", nil, nil); err == nil {
		t.Error("queue policy without source must fail")
	}
	if _, err := Open(config.DedupPolicy(42), &config.LedgerConfig{}, "", nil, nil); err == nil {
		t.Error("unknown policy must fail")
	}
}
