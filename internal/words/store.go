// internal/words/store.go
//
// Word list management for the game.
//
// Responsibilities:
//   - Load the playable and dictionary lists from files, preferring a custom
//     override when present and falling back to embedded defaults.
//   - Maintain both sets for quick lookups behind a single read/write lock.
//   - Apply the edit protocol (/addword, /removeword) atomically to both sets.
//   - Track a dirty flag so the persistence worker knows when to flush.
//
// Word lists:
//   - "playable":   words eligible to be picked as secret answers.
//   - "dictionary": words accepted as valid guesses (maintained independently;
//     edits apply to both lists, so in practice it grows as a superset).
//
// Load order, per list:
//   1. <dir>/<name>_custom.txt if it exists (written by the flush worker).
//   2. <dir>/<name>.txt if it exists (shipped list).
//   3. Embedded small defaults (ensures the bot runs with no files configured).
//
// Constraints:
//   • Words must be exactly 5 Unicode scalar values.
//   • Lists are normalized to lowercase.

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// File names within the words directory. The custom files are the flush
// destinations and take precedence over the shipped lists on load.
const (
	PlayableFile       = "words.txt"
	PlayableOverride   = "words_custom.txt"
	DictionaryFile     = "dictionary.txt"
	DictionaryOverride = "dictionary_custom.txt"
)

// --- embedded tiny defaults (ensures the bot runs even if no files exist) ---

//go:embed default_playable.txt
var embeddedPlayable string

//go:embed default_dictionary.txt
var embeddedDictionary string

// Store holds the two word sets shared by every conversation and the
// persistence worker. A single RWMutex guards both sets so an edit to the
// pair is observed atomically by concurrent readers.
type Store struct {
	mu         sync.RWMutex
	playable   map[string]struct{}
	dictionary map[string]struct{}
	dirty      atomic.Bool
}

// Action selects the edit protocol operation.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
)

// New constructs a Store from explicit lists. Words are normalized; entries
// that are not exactly 5 runes after normalization are dropped.
func New(playable, dictionary []string) *Store {
	s := &Store{
		playable:   make(map[string]struct{}, len(playable)),
		dictionary: make(map[string]struct{}, len(dictionary)),
	}
	for _, w := range playable {
		if w, ok := normalize(w); ok {
			s.playable[w] = struct{}{}
		}
	}
	for _, w := range dictionary {
		if w, ok := normalize(w); ok {
			s.dictionary[w] = struct{}{}
		}
	}
	return s
}

// Load reads both lists from dir following the override chain.
// Returns an error if a list file exists but cannot be read, or if the
// playable set ends up empty (the game cannot start without answers).
func Load(dir string) (*Store, error) {
	playable, err := loadList(dir, PlayableOverride, PlayableFile, embeddedPlayable)
	if err != nil {
		return nil, err
	}
	dictionary, err := loadList(dir, DictionaryOverride, DictionaryFile, embeddedDictionary)
	if err != nil {
		return nil, err
	}
	s := New(playable, dictionary)
	if len(s.playable) == 0 {
		return nil, errors.New("words: playable list is empty")
	}
	return s, nil
}

// loadList resolves one list: override file, then default file, then the
// embedded fallback. The fallback chain only covers files that do not
// exist; any other stat failure means a configured list is unreadable and
// startup must not proceed with defaults.
func loadList(dir, override, fallback, embedded string) ([]string, error) {
	for _, name := range []string{override, fallback} {
		path := filepath.Join(dir, name)
		switch _, err := os.Stat(path); {
		case err == nil:
			return readWordFile(path)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	return splitLines(embedded), nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// splitLines processes an embedded multiline string into raw entries.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// normalize lowercases and trims a candidate word and reports whether it is
// exactly 5 Unicode scalar values long.
func normalize(w string) (string, bool) {
	w = strings.TrimSpace(strings.ToLower(w))
	return w, utf8.RuneCountInString(w) == 5
}

// PickRandomPlayable returns a uniformly random playable word.
// An empty playable set is a startup invariant violation (Load rejects it),
// so this panics rather than returning an error.
func (s *Store) PickRandomPlayable() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.playable) == 0 {
		panic("words: playable set is empty")
	}
	list := make([]string, 0, len(s.playable))
	for w := range s.playable {
		list = append(list, w)
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	return list[nBig.Int64()]
}

// ContainsInDictionary reports whether w is a valid guess.
func (s *Store) ContainsInDictionary(w string) bool {
	w = strings.ToLower(w)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dictionary[w]
	return ok
}

// Edit applies one batch edit to BOTH sets and returns the sorted subset of
// words that actually changed (newly inserted for ActionAdd, present before
// removal for ActionRemove). Re-adding an existing word or removing a missing
// one is a no-op, not an error.
//
// For ActionAdd, candidates that are not exactly 5 runes are silently
// skipped; the same length rule applies to both sets. ActionRemove accepts
// any token, since an invalid word cannot be present anyway.
//
// The whole batch runs under one write lock, so a concurrent reader never
// observes a partially applied edit. The dirty flag is set only when at
// least one word changed.
func (s *Store) Edit(action Action, candidates []string) []string {
	changed := make(map[string]struct{})

	s.mu.Lock()
	for _, c := range candidates {
		w, ok := normalize(c)
		switch action {
		case ActionAdd:
			if !ok {
				continue
			}
			// Insert into both sets unconditionally; either one changing
			// counts the word as changed.
			inPlayable := insert(s.playable, w)
			inDictionary := insert(s.dictionary, w)
			if inPlayable || inDictionary {
				changed[w] = struct{}{}
			}
		case ActionRemove:
			fromPlayable := remove(s.playable, w)
			fromDictionary := remove(s.dictionary, w)
			if fromPlayable || fromDictionary {
				changed[w] = struct{}{}
			}
		}
	}
	s.mu.Unlock()

	if len(changed) == 0 {
		return nil
	}
	s.dirty.Store(true)

	out := make([]string, 0, len(changed))
	for w := range changed {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// insert adds w to set and reports whether it was newly inserted.
func insert(set map[string]struct{}, w string) bool {
	if _, ok := set[w]; ok {
		return false
	}
	set[w] = struct{}{}
	return true
}

// remove deletes w from set and reports whether it was present.
func remove(set map[string]struct{}, w string) bool {
	if _, ok := set[w]; !ok {
		return false
	}
	delete(set, w)
	return true
}

// Snapshot returns sorted copies of both sets, taken under one read lock so
// the pair is mutually consistent. Used by the persistence worker.
func (s *Store) Snapshot() (playable, dictionary []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playable = make([]string, 0, len(s.playable))
	for w := range s.playable {
		playable = append(playable, w)
	}
	dictionary = make([]string, 0, len(s.dictionary))
	for w := range s.dictionary {
		dictionary = append(dictionary, w)
	}
	sort.Strings(playable)
	sort.Strings(dictionary)
	return playable, dictionary
}

// ConsumeDirty atomically tests and clears the dirty flag, returning its
// previous value. Exactly one flush cycle owns each observed "true".
func (s *Store) ConsumeDirty() bool {
	return s.dirty.Swap(false)
}

// MarkDirty re-arms the dirty flag. The worker calls this after a failed
// flush so the next cycle retries instead of dropping the change.
func (s *Store) MarkDirty() {
	s.dirty.Store(true)
}

// Stats returns counts of loaded words: (playable, dictionary).
func (s *Store) Stats() (playableCount, dictionaryCount int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.playable), len(s.dictionary)
}
