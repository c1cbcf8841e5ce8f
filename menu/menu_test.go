package menu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"dailysent/config"
	"dailysent/page"
)

func menuConfig() *config.MenuConfig {
	return &config.MenuConfig{
		Enable:      true,
		Selector:    "nav#menu",
		ScanDir:     "posts",
		NewestFirst: true,
		Labels: config.LabelsConfig{
			YearTemplate:  "{{ .Year }}년",
			MonthTemplate: `{{ .Month | trimPrefix "0" }}월`,
			DayTemplate:   "{{ .Date }}",
		},
	}
}

func link(date string) Link {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return Link{Date: d, Href: "posts/" + d.Format("2006/01/") + date + ".html"}
}

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := New(menuConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

func inOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		i := strings.Index(s, p)
		if i < 0 {
			t.Errorf("%q not found in\n%s", p, s)
			return
		}
		if i < last {
			t.Errorf("%q is out of order in\n%s", p, s)
		}
		last = i
	}
}

const livePage = `<html><body><div id="main">content</div>
<nav id="menu"><header class="major"><h2>Menu</h2></header></nav>
<footer>f</footer></body></html>`

func TestPatch(t *testing.T) {
	b := newBuilder(t)

	out, content, err := b.Patch([]byte(livePage), link("2025-06-01"))
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	wantContent := `<header class="major"><h2>Menu</h2></header>` +
		`<ul class="menu"><li data-year="2025"><span class="opener">2025년</span>` +
		`<ul><li data-month="2025-06"><span class="opener">6월</span>` +
		`<ul><li data-date="2025-06-01"><a href="posts/2025/06/2025-06-01.html">2025-06-01</a></li></ul>` +
		`</li></ul></li></ul>`
	if string(content) != wantContent {
		t.Errorf("Patch() content =\n%s\nwant\n%s", content, wantContent)
	}
	wantDoc := strings.Replace(livePage, `<nav id="menu"><header class="major"><h2>Menu</h2></header></nav>`,
		"<nav id=\"menu\">\n"+wantContent+"\n</nav>", 1)
	if string(out) != wantDoc {
		t.Errorf("Patch() document =\n%s\nwant\n%s", out, wantDoc)
	}

	// the same day again does not create second entry
	again, _, err := b.Patch(out, link("2025-06-01"))
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(out) {
		t.Errorf("duplicate link changed document:\n%s", again)
	}

	out, _, err = b.Patch(out, link("2024-12-31"))
	if err != nil {
		t.Fatal(err)
	}
	out, _, err = b.Patch(out, link("2025-06-02"))
	if err != nil {
		t.Fatal(err)
	}
	out, content, err = b.Patch(out, link("2025-05-31"))
	if err != nil {
		t.Fatal(err)
	}

	result := string(content)
	if strings.Count(result, `data-year="2025"`) != 1 || strings.Count(result, `data-month="2025-06"`) != 1 {
		t.Errorf("year or month nodes duplicated:\n%s", result)
	}
	inOrder(t, result,
		`data-year="2025"`, `data-month="2025-06"`, `data-date="2025-06-02"`, `data-date="2025-06-01"`,
		`data-month="2025-05"`, `data-date="2025-05-31"`,
		`data-year="2024"`, `data-date="2024-12-31"`)
	if !strings.HasSuffix(string(out), "\n</nav>\n<footer>f</footer></body></html>") {
		t.Errorf("page tail changed:\n%s", out)
	}
}

func TestPatch_OldestFirstAndForeignLinks(t *testing.T) {
	conf := menuConfig()
	conf.NewestFirst = false
	b, err := New(conf, nil)
	if err != nil {
		t.Fatal(err)
	}
	// link added by hand without our attributes still counts
	doc := `<nav id="menu"><ul><li><a href="posts/2025/06/2025-06-01.html">first</a></li></ul></nav>`

	out, _, err := b.Patch([]byte(doc), link("2025-06-01"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != doc {
		t.Errorf("hand written link was duplicated:\n%s", out)
	}

	out, _, err = b.Patch(out, link("2025-06-03"))
	if err != nil {
		t.Fatal(err)
	}
	out, content, err := b.Patch(out, link("2025-06-02"))
	if err != nil {
		t.Fatal(err)
	}
	inOrder(t, string(content), ">first</a>", `data-date="2025-06-02"`, `data-date="2025-06-03"`)
	if !strings.HasPrefix(string(out), "<nav id=\"menu\">\n<ul><li><a href=\"posts/2025/06/2025-06-01.html\">first</a></li>") {
		t.Errorf("existing list was not reused:\n%s", out)
	}
}

func TestPatch_NoMenu(t *testing.T) {
	_, _, err := newBuilder(t).Patch([]byte("<html><body></body></html>"), link("2025-06-01"))
	if !errors.Is(err, page.ErrAnchorNotFound) {
		t.Errorf("Patch() error = %v, want ErrAnchorNotFound", err)
	}
}

func TestScanAndRebuild(t *testing.T) {
	site := t.TempDir()
	for _, name := range []string{
		"posts/2025/06/2025-06-01.html",
		"posts/2025/05/2025-05-31.html",
		"posts/2024-12-31.html",
		"posts/about.html",
		"posts/2025/06/2025-06-02.txt",
	} {
		path := filepath.Join(site, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	core, logs := observer.New(zapcore.WarnLevel)
	b, err := New(menuConfig(), zap.New(core))
	if err != nil {
		t.Fatal(err)
	}
	links, err := b.Scan(site, "posts")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("Scan() found %d links, want 3: %+v", len(links), links)
	}
	skipped := logs.FilterMessage("Archive page is not named after date, skipping").All()
	if len(skipped) != 1 || skipped[0].ContextMap()["path"] != filepath.Join(site, "posts", "about.html") {
		t.Errorf("skipped pages were not reported: %+v", logs.All())
	}

	doc := `<nav id="menu"><ul><li>stale</li></ul></nav>`
	out, content, tree, err := b.Rebuild([]byte(doc), links)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if strings.Contains(string(out), "stale") {
		t.Errorf("previous menu survived rebuild:\n%s", out)
	}
	inOrder(t, string(content),
		`<ul class="menu">`, `<li data-year="2025">`, `<span class="opener">2025년</span>`,
		`<li data-month="2025-06">`, `<a href="posts/2025/06/2025-06-01.html">2025-06-01</a>`,
		`<li data-month="2025-05">`, `<span class="opener">5월</span>`, `<a href="posts/2025/05/2025-05-31.html">`,
		`<li data-year="2024">`, `<a href="posts/2024-12-31.html">`)
	if !strings.HasPrefix(string(out), "<nav id=\"menu\">\n<ul class=\"menu\">") || !strings.HasSuffix(string(out), "</ul>\n</nav>") {
		t.Errorf("Rebuild() document:\n%s", out)
	}

	dump := tree.Dump()
	if !strings.HasPrefix(dump, "menu: 2 year(s), 3 day(s)\n") || !strings.Contains(dump, `href: "posts/2024-12-31.html"`) {
		t.Errorf("Dump() =\n%s", dump)
	}
}

func TestScan_MissingDir(t *testing.T) {
	links, err := newBuilder(t).Scan(t.TempDir(), "posts")
	if err != nil || len(links) != 0 {
		t.Errorf("Scan() = %v, %v", links, err)
	}
}

func TestBuild(t *testing.T) {
	b := newBuilder(t)
	tree, err := b.Tree([]Link{link("2025-06-01"), link("2025-06-01"), link("2025-06-10"), link("2025-06-09")})
	if err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}
	days := tree.Years[0].Months[0].Days
	if days[0].Key != "2025-06-10" || days[2].Key != "2025-06-01" {
		t.Errorf("days order = %+v", days)
	}

	empty, err := b.Tree(nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := empty.Render()
	if err != nil || string(out) != `<ul class="menu"></ul>` {
		t.Errorf("Render() of empty tree = %q, %v", out, err)
	}
}

func TestNew_Errors(t *testing.T) {
	conf := menuConfig()
	conf.Selector = "nav ul"
	if _, err := New(conf, nil); err == nil {
		t.Error("expected selector error")
	}
	conf = menuConfig()
	conf.Labels.DayTemplate = "{{ .Date"
	if _, err := New(conf, nil); err == nil {
		t.Error("expected label template error")
	}
}
