// Package cli runs the line-oriented query driver: one key per input line,
// records to the output file and a comparison summary to stdout.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/addrdict/pkg/record"
	"github.com/bastiangx/addrdict/pkg/suggest"
	"github.com/bastiangx/addrdict/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// CompleteCommand prefixes an input line that asks for key completions
// instead of a lookup.
const CompleteCommand = ":complete"

// maxLineLength bounds a single input line.
const maxLineLength = 1 << 20

// Dictionary is what the query driver needs from a loaded dataset.
type Dictionary interface {
	Header() *record.Header
	Lookup(key string) *trie.Result[*record.Record]
	Complete(prefix string, limit int) []suggest.Suggestion
}

// Options controls the query driver.
type Options struct {
	ShowCounters  bool
	Prompt        bool
	CompleteLimit int
}

// QueryRunner reads queries and writes their results.
type QueryRunner struct {
	dict   Dictionary
	out    io.Writer
	stdout io.Writer
	prompt io.Writer
	opts   Options

	queries int
	found   int
}

// NewQueryRunner writes records to out and summaries to stdout.
func NewQueryRunner(dict Dictionary, out, stdout io.Writer, opts Options) *QueryRunner {
	return &QueryRunner{
		dict:   dict,
		out:    out,
		stdout: stdout,
		opts:   opts,
	}
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run processes in until EOF. Blank lines are skipped.
func (q *QueryRunner) Run(in io.Reader) error {
	if q.opts.Prompt && IsTerminal(in) {
		q.prompt = os.Stderr
		fmt.Fprintln(q.prompt, "type a key and press Enter (Ctrl+D to finish):")
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	start := time.Now()
	for {
		q.showPrompt()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if err := q.handleLine(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}

	log.Debugf("Answered %d queries (%d exact) in %v", q.queries, q.found, time.Since(start))
	return nil
}

func (q *QueryRunner) showPrompt() {
	if q.prompt != nil {
		fmt.Fprint(q.prompt, "> ")
	}
}

func (q *QueryRunner) handleLine(line string) error {
	if prefix, ok := strings.CutPrefix(line, CompleteCommand); ok && (prefix == "" || prefix[0] == ' ') {
		return q.complete(strings.TrimSpace(prefix))
	}
	return q.Query(line)
}

// Query answers a single key.
func (q *QueryRunner) Query(key string) error {
	q.queries++
	if _, err := fmt.Fprintf(q.out, "%s\n", key); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	res := q.dict.Lookup(key)
	if res.Outcome == trie.Found {
		q.found++
	}
	log.Debug("Lookup", "key", key, "outcome", res.Outcome, "matches", res.Len())

	if res.Len() == 0 {
		if _, err := io.WriteString(q.out, "NOTFOUND\n"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		header := q.dict.Header()
		for _, rec := range res.Matches {
			if err := header.Format(q.out, rec); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	var err error
	if q.opts.ShowCounters {
		_, err = fmt.Fprintf(q.stdout, "%s --> %d records found - comparisons: b%d n%d s%d\n",
			key, res.Len(), res.BitCmps, res.NodeCmps, res.StrCmps)
	} else {
		_, err = fmt.Fprintf(q.stdout, "%s --> %d records found\n", key, res.Len())
	}
	return err
}

func (q *QueryRunner) complete(prefix string) error {
	suggestions := q.dict.Complete(prefix, q.opts.CompleteLimit)
	if len(suggestions) == 0 {
		log.Warnf("No keys start with %q", prefix)
		return nil
	}
	for i, s := range suggestions {
		if _, err := fmt.Fprintf(q.stdout, "%2d. %s (%d)\n", i+1, s.Key, s.Count); err != nil {
			return err
		}
	}
	return nil
}
