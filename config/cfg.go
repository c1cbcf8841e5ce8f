package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	SiteConfig struct {
		Index    string `yaml:"index" validate:"required"`
		TimeZone string `yaml:"time_zone" validate:"required"`
	}

	CSVConfig struct {
		Comma  string `yaml:"comma" validate:"len=1"`
		Header bool   `yaml:"header"`
	}

	SourceConfig struct {
		Path           string       `yaml:"path" validate:"required"`
		Format         SourceFormat `yaml:"format" validate:"gte=0"`
		Grouping       Grouping     `yaml:"grouping" validate:"gte=0"`
		LinesPerEntry  int          `yaml:"lines_per_entry" validate:"oneof=3 4"`
		SkipBlankLines bool         `yaml:"skip_blank_lines"`
		Encoding       string       `yaml:"encoding,omitempty"`
		CSV            CSVConfig    `yaml:"csv"`
	}

	SelectionConfig struct {
		Count  int         `yaml:"count" validate:"min=1,max=100"`
		Policy DedupPolicy `yaml:"policy" validate:"gte=0"`
	}

	LedgerConfig struct {
		Path   string       `yaml:"path" validate:"required"`
		Format LedgerFormat `yaml:"format" validate:"gte=0"`
	}

	RenderConfig struct {
		TemplatePath string `yaml:"template_path,omitempty" sanitize:"assure_file_access"`
		Title        string `yaml:"title"`
	}

	AnchorConfig struct {
		Kind      AnchorKind `yaml:"kind" validate:"gte=0"`
		Marker    string     `yaml:"marker" validate:"required_if=Kind 0"`
		EndMarker string     `yaml:"end_marker" validate:"required_if=Kind 0"`
		Selector  string     `yaml:"selector" validate:"required_if=Kind 1"`
	}

	PageConfig struct {
		Anchor AnchorConfig `yaml:"anchor"`
	}

	ArchiveConfig struct {
		Enable        bool         `yaml:"enable"`
		Order         ArchiveOrder `yaml:"order" validate:"gte=0"`
		NameTemplate  string       `yaml:"name_template" validate:"required_if=Enable true"`
		RewriteAssets bool         `yaml:"rewrite_assets"`
	}

	LabelsConfig struct {
		YearTemplate  string `yaml:"year_template" validate:"required"`
		MonthTemplate string `yaml:"month_template" validate:"required"`
		DayTemplate   string `yaml:"day_template" validate:"required"`
	}

	MenuConfig struct {
		Enable       bool         `yaml:"enable"`
		Mode         MenuMode     `yaml:"mode" validate:"gte=0"`
		Selector     string       `yaml:"selector" validate:"required_if=Enable true"`
		ScanDir      string       `yaml:"scan_dir" validate:"required_if=Mode 1"`
		FragmentPath string       `yaml:"fragment_path,omitempty"`
		NewestFirst  bool         `yaml:"newest_first"`
		Labels       LabelsConfig `yaml:"labels"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Site      SiteConfig      `yaml:"site"`
		Source    SourceConfig    `yaml:"source"`
		Selection SelectionConfig `yaml:"selection"`
		Ledger    LedgerConfig    `yaml:"ledger"`
		Render    RenderConfig    `yaml:"render"`
		Page      PageConfig      `yaml:"page"`
		Archive   ArchiveConfig   `yaml:"archive"`
		Menu      MenuConfig      `yaml:"menu"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	ArchiveNameTemplateFieldName TemplateFieldName = "name_template"
	YearLabelTemplateFieldName   TemplateFieldName = "year_template"
	MonthLabelTemplateFieldName  TemplateFieldName = "month_template"
	DayLabelTemplateFieldName    TemplateFieldName = "day_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(ArchiveNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(YearLabelTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(MonthLabelTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(DayLabelTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if _, err := time.LoadLocation(cfg.Site.TimeZone); err != nil {
			return nil, fmt.Errorf("bad site time zone %q: %w", cfg.Site.TimeZone, err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Location returns time zone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.TimeZone)
	if err != nil {
		// validated on load
		return time.Local
	}
	return loc
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
