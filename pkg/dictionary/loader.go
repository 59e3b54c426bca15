package dictionary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/addrdict/pkg/record"
	"github.com/bastiangx/addrdict/pkg/suggest"
	"github.com/bastiangx/addrdict/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Options controls how a dataset is turned into a dictionary.
type Options struct {
	KeyColumn      string
	CoordColumns   []string
	CoordPrecision int
	MaxKeyLength   int
}

// DefaultOptions matches the default [dict] config section.
func DefaultOptions() Options {
	return Options{
		KeyColumn:      "EZI_ADD",
		CoordColumns:   []string{"x", "y"},
		CoordPrecision: record.DefaultPrecision,
		MaxKeyLength:   trie.DefaultMaxKeyLength,
	}
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	Records  int
	Keys     int
	Skipped  int
	MaxCount int
	Bytes    int64
	Duration time.Duration
}

// Dictionary is a loaded dataset: the record trie plus a completion index
// over its keys.
type Dictionary struct {
	header    *record.Header
	trie      *trie.Trie[*record.Record]
	completer *suggest.Completer
	stats     LoaderStats
	closed    bool
}

// Load reads the dataset at path. The format is taken from the extension.
func Load(path string, opts Options) (*Dictionary, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	d, err := LoadReader(file, format, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if info, err := file.Stat(); err == nil {
		d.stats.Bytes = info.Size()
	}

	log.Infof("Loaded %s records (%s keys, %s skipped) from %s [%s] in %v",
		humanize.Comma(int64(d.stats.Records)),
		humanize.Comma(int64(d.stats.Keys)),
		humanize.Comma(int64(d.stats.Skipped)),
		path,
		humanize.Bytes(uint64(d.stats.Bytes)),
		d.stats.Duration.Round(time.Millisecond))
	return d, nil
}

// LoadReader builds a dictionary from r. The first row is the header.
func LoadReader(r io.Reader, format FileFormat, opts Options) (*Dictionary, error) {
	info, ok := GetFormatInfo(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %v", format)
	}
	start := time.Now()

	reader := csv.NewReader(r)
	reader.Comma = info.Comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	names, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset has no header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], "\ufeff")
	}

	header, err := record.NewHeader(names, opts.KeyColumn, opts.CoordColumns, opts.CoordPrecision)
	if err != nil {
		return nil, err
	}

	maxLen := opts.MaxKeyLength
	if maxLen <= 0 {
		maxLen = trie.DefaultMaxKeyLength
	}
	d := &Dictionary{
		header:    header,
		trie:      trie.NewWithLimit[*record.Record](maxLen),
		completer: suggest.NewCompleter(),
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("failed to read row at line %d: %w", line, err)
		}
		if len(fields) == 1 && fields[0] == "" {
			continue
		}

		rec := header.NewRecord(fields)
		key := header.Key(rec)
		if err := d.trie.Insert(key, rec); err != nil {
			line, _ := reader.FieldPos(0)
			log.Warnf("Skipping row at line %d: %v", line, err)
			d.stats.Skipped++
			continue
		}
		d.completer.AddKey(key)
		d.stats.Records++
	}

	cs := d.completer.Stats()
	d.stats.Keys = cs["totalKeys"]
	d.stats.MaxCount = cs["maxCount"]
	d.stats.Duration = time.Since(start)
	log.Debugf("Built trie with %d insertions and %d distinct keys", d.trie.Len(), d.stats.Keys)
	return d, nil
}

// Header returns the dataset's column layout.
func (d *Dictionary) Header() *record.Header {
	return d.header
}

// Lookup runs an exact search and falls back to the closest key.
func (d *Dictionary) Lookup(key string) *trie.Result[*record.Record] {
	return d.trie.Search(key)
}

// Complete returns the keys starting with prefix.
func (d *Dictionary) Complete(prefix string, limit int) []suggest.Suggestion {
	if d.closed {
		return nil
	}
	return d.completer.Complete(prefix, limit)
}

// Stats returns the load statistics.
func (d *Dictionary) Stats() LoaderStats {
	return d.stats
}

// Close releases the trie. Lookups afterwards find nothing.
func (d *Dictionary) Close() {
	if d.closed {
		return
	}
	d.trie.Release()
	d.completer = suggest.NewCompleter()
	d.closed = true
}
