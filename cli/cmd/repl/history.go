package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// HistoryFile is the base name of the history file in the cache directory.
const HistoryFile = "history.utf8"

// HistoryLimit is the number of entries kept in the history file.
const HistoryLimit = 1000

// Mode prefixes of lines in the history file. Lines without a prefix are
// format strings.
const (
	formatPrefix = "F:"
	ctrlPrefix   = "C:"
)

// HistoryEntry is one submitted line and the mode it was submitted in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String encodes e as a line of the history file.
func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return ctrlPrefix + e.Line
	}

	return formatPrefix + e.Line
}

func decodeHistoryEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, ctrlPrefix); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	s, _ := strings.CutPrefix(line, formatPrefix)

	return HistoryEntry{Line: s, Mode: modeFormat}
}

// History is the list of submitted lines, oldest first, mirrored to a file.
// Each (line, mode) pair appears once, at the position it was last
// submitted. An empty path keeps history in memory only.
type History struct {
	mu      sync.RWMutex
	path    string
	limit   int
	entries []HistoryEntry
}

// NewHistory returns an empty History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path, limit: HistoryLimit}
}

// Load replaces the entries with the contents of the history file. A missing
// file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer f.Close()

	h.entries = h.entries[:0]

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			h.entries = append(h.entries, decodeHistoryEntry(line))
		}
	}

	h.trim()

	return sc.Err()
}

// Add records line as the newest entry. Blank and multi-line input is
// ignored. Format strings are kept verbatim since surrounding spaces are
// text; commands are trimmed.
func (h *History) Add(line string, mode inputMode) error {
	if strings.TrimSpace(line) == "" || strings.ContainsAny(line, "\r\n") {
		return nil
	}

	if mode == modeCtrl {
		line = strings.TrimSpace(line)
	}

	entry := HistoryEntry{Line: line, Mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	switch {
	case h.path == "":
		h.trim()

		return nil
	case i >= 0 || h.trim():
		return h.save()
	default:
		return h.appendLine(entry)
	}
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// trim drops the oldest entries beyond the limit and reports whether any
// were dropped. Callers hold h.mu.
func (h *History) trim() bool {
	if h.limit <= 0 || len(h.entries) <= h.limit {
		return false
	}

	h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.limit)

	return true
}

// appendLine writes a single entry to the end of the file. Callers hold h.mu.
func (h *History) appendLine(entry HistoryEntry) error {
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	_, err = f.WriteString(entry.String() + "\n")

	return errors.Join(err, f.Close())
}

// save replaces the file with the current entries through a temporary file
// in the same directory. Callers hold h.mu.
func (h *History) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(h.path), ".history-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range h.entries {
		w.WriteString(e.String() + "\n")
	}

	if err := errors.Join(w.Flush(), tmp.Close()); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), h.path)
}
