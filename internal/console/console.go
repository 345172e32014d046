// Package console renders user-facing output. Every mode writes through a
// Sink so that silent runs and tests never touch the terminal.
package console

import (
	"fmt"
	"strings"
	"sync"
)

// Tone selects the accent color of a panel
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarn
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarn:
		return "warn"
	case ToneError:
		return "error"
	default:
		return "info"
	}
}

// Sink receives user-facing messages
type Sink interface {
	Info(format string, args ...interface{})
	Dim(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Panel(title, body string, tone Tone)
	Table(title string, headers []string, rows [][]string)
}

// Silent discards everything
type Silent struct{}

func (Silent) Info(string, ...interface{}) {}
func (Silent) Dim(string, ...interface{}) {}
func (Silent) Success(string, ...interface{}) {}
func (Silent) Warn(string, ...interface{}) {}
func (Silent) Error(string, ...interface{}) {}
func (Silent) Panel(string, string, Tone) {}
func (Silent) Table(string, []string, [][]string) {}

// Entry is one recorded message
type Entry struct {
	Kind string // info, dim, success, warn, error, panel, table
	Text string
	Tone Tone
	Rows [][]string
}

// Buffer records messages in memory
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBuffer creates an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
}

func (b *Buffer) Info(format string, args ...interface{}) {
	b.add(Entry{Kind: "info", Text: fmt.Sprintf(format, args...)})
}

func (b *Buffer) Dim(format string, args ...interface{}) {
	b.add(Entry{Kind: "dim", Text: fmt.Sprintf(format, args...)})
}

func (b *Buffer) Success(format string, args ...interface{}) {
	b.add(Entry{Kind: "success", Text: fmt.Sprintf(format, args...)})
}

func (b *Buffer) Warn(format string, args ...interface{}) {
	b.add(Entry{Kind: "warn", Text: fmt.Sprintf(format, args...)})
}

func (b *Buffer) Error(format string, args ...interface{}) {
	b.add(Entry{Kind: "error", Text: fmt.Sprintf(format, args...)})
}

func (b *Buffer) Panel(title, body string, tone Tone) {
	b.add(Entry{Kind: "panel", Text: title + "\n" + body, Tone: tone})
}

func (b *Buffer) Table(title string, headers []string, rows [][]string) {
	copied := make([][]string, 0, len(rows)+1)
	copied = append(copied, append([]string(nil), headers...))
	for _, r := range rows {
		copied = append(copied, append([]string(nil), r...))
	}
	b.add(Entry{Kind: "table", Text: title, Rows: copied})
}

// Entries returns a snapshot of everything recorded so far
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Entry(nil), b.entries...)
}

// Kind returns the entries of one kind
func (b *Buffer) Kind(kind string) []Entry {
	var out []Entry
	for _, e := range b.Entries() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any entry's text contains s
func (b *Buffer) Contains(s string) bool {
	for _, e := range b.Entries() {
		if strings.Contains(e.Text, s) {
			return true
		}
	}
	return false
}

// Len returns the number of recorded entries
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
