package navigation

import (
	"strconv"
	"sync"
	"time"
)

// JournalEntry is one recorded navigation.
type JournalEntry struct {
	ID       string
	Sequence uint64
	Path     ResolvedPath
	At       time.Time
}

// Journal is a back-stack of resolved paths with a cursor on the current entry.
// Pushing after going back discards the forward history.
type Journal struct {
	mu       sync.RWMutex
	entries  []JournalEntry
	cursor   int // index of the current entry, -1 when empty
	capacity int
	seq      uint64
	newID    func() string
	now      func() time.Time
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithCapacity bounds the number of retained entries; the oldest are dropped first.
// Zero or less means unbounded.
func WithCapacity(n int) JournalOption {
	return func(j *Journal) {
		j.capacity = n
	}
}

// WithIDGenerator sets the entry ID generator. The default uses the sequence number.
func WithIDGenerator(fn func() string) JournalOption {
	return func(j *Journal) {
		j.newID = fn
	}
}

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) JournalOption {
	return func(j *Journal) {
		j.now = now
	}
}

// NewJournal creates an empty journal.
func NewJournal(opts ...JournalOption) *Journal {
	j := &Journal{
		cursor: -1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Push records path as the current entry, discarding everything after the cursor.
func (j *Journal) Push(path ResolvedPath) JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.seq++
	entry := JournalEntry{
		ID:       j.generateID(),
		Sequence: j.seq,
		Path:     path,
		At:       j.now(),
	}

	j.entries = append(j.entries[:j.cursor+1], entry)
	if j.capacity > 0 && len(j.entries) > j.capacity {
		drop := len(j.entries) - j.capacity
		j.entries = append([]JournalEntry(nil), j.entries[drop:]...)
	}
	j.cursor = len(j.entries) - 1
	return entry
}

func (j *Journal) generateID() string {
	if j.newID != nil {
		return j.newID()
	}
	return strconv.FormatUint(j.seq, 10)
}

// CanGoBack reports whether an entry precedes the current one.
func (j *Journal) CanGoBack() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cursor > 0
}

// CanGoForward reports whether an entry follows the current one.
func (j *Journal) CanGoForward() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cursor < len(j.entries)-1
}

// Previous returns the entry before the current one without moving the cursor.
func (j *Journal) Previous() (JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.cursor <= 0 {
		return JournalEntry{}, &EmptyJournalError{Direction: "back", Len: len(j.entries)}
	}
	return j.entries[j.cursor-1], nil
}

// GoBack moves the cursor back and returns the path that is now current.
func (j *Journal) GoBack() (ResolvedPath, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cursor <= 0 {
		return ResolvedPath{}, &EmptyJournalError{Direction: "back", Len: len(j.entries)}
	}
	j.cursor--
	return j.entries[j.cursor].Path, nil
}

// GoForward moves the cursor forward and returns the path that is now current.
func (j *Journal) GoForward() (ResolvedPath, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cursor >= len(j.entries)-1 {
		return ResolvedPath{}, &EmptyJournalError{Direction: "forward", Len: len(j.entries)}
	}
	j.cursor++
	return j.entries[j.cursor].Path, nil
}

// Current returns the current entry.
func (j *Journal) Current() (JournalEntry, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.cursor < 0 {
		return JournalEntry{}, false
	}
	return j.entries[j.cursor], true
}

// Cursor returns the index of the current entry, -1 when empty.
func (j *Journal) Cursor() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cursor
}

// Entries returns a copy of all entries, including forward history.
func (j *Journal) Entries() []JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of entries, including forward history.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Clear removes every entry.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
	j.cursor = -1
}
