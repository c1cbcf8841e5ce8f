package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"dailysent/config"
)

const bom = "\uFEFF"

// Source is parsed sentence source file.
type Source struct {
	Path    string
	Format  config.SourceFormat
	Entries []Entry
	// Dropped counts malformed line groups which did not become entries.
	Dropped int

	text      string
	headerEnd int
	bom       bool
	enc       encoding.Encoding
}

// Load reads and parses sentence source. Format "auto" is resolved by file
// extension.
func Load(path string, conf *config.SourceConfig, log *zap.Logger) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read sentence source: %w", err)
	}
	return Parse(path, data, conf, log)
}

// Parse is Load for already read data, path is only used to resolve format
// and for diagnostics.
func Parse(path string, data []byte, conf *config.SourceConfig, log *zap.Logger) (*Source, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var err error
	head := data[:min(len(data), 262)]
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return nil, fmt.Errorf("%w: %s detected (%s)", ErrNotText, kind.MIME.Value, path)
	}

	s := &Source{Path: path, Format: conf.Format}

	if len(conf.Encoding) > 0 {
		if s.enc, err = lookupEncoding(conf.Encoding); err != nil {
			return nil, err
		}
	}
	if s.enc != nil {
		if data, err = s.enc.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("unable to decode source from %s: %w", conf.Encoding, err)
		}
	} else if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: source is not valid UTF-8 and no encoding was specified (%s)", ErrNotText, path)
	}

	s.text = string(data)
	if strings.HasPrefix(s.text, bom) {
		s.bom = true
		s.text = s.text[len(bom):]
	}

	if s.Format == config.SourceFormatAuto {
		s.Format = config.SourceFormatText
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			s.Format = config.SourceFormatCsv
		}
	}

	switch s.Format {
	case config.SourceFormatCsv:
		err = s.parseCSV(conf, log)
	default:
		if conf.Grouping == config.GroupingBlank {
			s.parseBlankSeparated(log)
		} else {
			s.parseFixed(conf.LinesPerEntry, conf.SkipBlankLines, log)
		}
	}
	if err != nil {
		return nil, err
	}

	log.Debug("Sentence source parsed",
		zap.String("path", path), zap.Stringer("format", s.Format),
		zap.Int("entries", len(s.Entries)), zap.Int("dropped", s.Dropped))
	return s, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown source encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported source encoding %q", name)
	}
	if enc == unicode.UTF8 {
		// no transformation needed
		return nil, nil
	}
	return enc, nil
}

type line struct {
	text       string
	start, end int
	num        int
}

func (s *Source) lines() []line {
	var (
		result []line
		pos    int
	)
	for num := 1; pos < len(s.text); num++ {
		end := strings.IndexByte(s.text[pos:], '\n')
		if end < 0 {
			end = len(s.text)
		} else {
			end += pos + 1
		}
		result = append(result, line{
			text:  strings.TrimSpace(s.text[pos:end]),
			start: pos,
			end:   end,
			num:   num,
		})
		pos = end
	}
	return result
}

func (s *Source) add(group []line, spare string, log *zap.Logger) {
	if len(group) < 3 || group[0].text == "" || group[1].text == "" || group[2].text == "" {
		s.Dropped++
		if len(group) > 0 {
			log.Debug("Dropping malformed entry", zap.String("path", s.Path), zap.Int("line", group[0].num), zap.Int("lines", len(group)))
		}
		return
	}
	s.Entries = append(s.Entries, Entry{
		English:       group[0].text,
		Translation:   group[1].text,
		Pronunciation: group[2].text,
		Spare:         spare,
		Index:         len(s.Entries),
		Line:          group[0].num,
		start:         group[0].start,
		end:           group[len(group)-1].end,
	})
}

// parseFixed groups every n consecutive lines, trailing incomplete group is
// dropped.
func (s *Source) parseFixed(n int, skipBlank bool, log *zap.Logger) {
	lines := s.lines()
	if skipBlank {
		kept := lines[:0]
		for _, l := range lines {
			if l.text != "" {
				kept = append(kept, l)
			}
		}
		lines = kept
	}
	for i := 0; i < len(lines); i += n {
		group := lines[i:min(i+n, len(lines))]
		if len(group) < n {
			s.Dropped++
			log.Debug("Dropping incomplete trailing entry", zap.String("path", s.Path), zap.Int("line", group[0].num), zap.Int("lines", len(group)))
			continue
		}
		var spare string
		if n > 3 {
			spare = group[3].text
		}
		s.add(group, spare, log)
	}
}

// parseBlankSeparated treats every run of non blank lines as an entry. Lines
// after pronunciation go to spare field.
func (s *Source) parseBlankSeparated(log *zap.Logger) {
	var group []line
	flush := func() {
		if len(group) == 0 {
			return
		}
		var spare []string
		if len(group) > 3 {
			for _, l := range group[3:] {
				spare = append(spare, l.text)
			}
		}
		s.add(group, strings.Join(spare, "\n"), log)
		group = nil
	}
	for _, l := range s.lines() {
		if l.text == "" {
			flush()
			continue
		}
		group = append(group, l)
	}
	flush()
}

func (s *Source) parseCSV(conf *config.SourceConfig, log *zap.Logger) error {
	r := csv.NewReader(strings.NewReader(s.text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.ReuseRecord = true
	if comma, _ := utf8.DecodeRuneInString(conf.CSV.Comma); comma != utf8.RuneError {
		r.Comma = comma
	}

	first := true
	for {
		start := int(r.InputOffset())
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("unable to parse csv source %s: %w", s.Path, err)
		}
		num, _ := r.FieldPos(0)
		if first && conf.CSV.Header {
			first = false
			s.headerEnd = int(r.InputOffset())
			continue
		}
		first = false

		group := make([]line, 0, 3)
		for _, field := range record[:min(3, len(record))] {
			group = append(group, line{text: strings.TrimSpace(field), start: start, end: int(r.InputOffset()), num: num})
		}
		var spare string
		if len(record) > 3 {
			spare = strings.TrimSpace(strings.Join(record[3:], string(r.Comma)))
		}
		s.add(group, spare, log)
	}
}

// Remainder returns content of the source file with consumed entries removed.
// Consumed entries must be a prefix of source entries (queue order), anything
// between them (blank lines, malformed groups) goes away as well. Header,
// byte order mark and character set are preserved.
func (s *Source) Remainder(consumed []Entry) ([]byte, error) {
	cut := s.headerEnd
	for _, e := range consumed {
		if e.Index < 0 || e.Index >= len(s.Entries) || s.Entries[e.Index] != e {
			return nil, fmt.Errorf("entry %s does not belong to source %s", e, s.Path)
		}
		cut = max(cut, e.end)
	}

	buf := new(bytes.Buffer)
	if s.bom {
		buf.WriteString(bom)
	}
	buf.WriteString(s.text[:s.headerEnd])
	buf.WriteString(s.text[cut:])

	if s.enc == nil {
		return buf.Bytes(), nil
	}
	out, err := s.enc.NewEncoder().Bytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unable to encode source remainder: %w", err)
	}
	return out, nil
}
