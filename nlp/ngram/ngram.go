package ngram

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyPrefix is returned by Validate for a key with no words under it.
var ErrEmptyPrefix = errors.New("prefix has no words")

// ErrBadCount is returned by Validate for a count below one.
var ErrBadCount = errors.New("count must be positive")

// Model maps a prefix key to the frequency of each word that followed it.
type Model map[string]map[string]int

// Lookup returns the count of word under key, and whether it is present.
func (m Model) Lookup(key, word string) (int, bool) {
	words, ok := m[key]
	if !ok {
		return 0, false
	}
	n, ok := words[word]
	return n, ok
}

// Forget removes one occurrence of word following key. A count that would
// drop to zero removes the word, and a key left without words is removed
// too. The returned events describe what changed, in order; nil means the
// pair was not in the model.
func (m Model) Forget(key, word string) []Event {
	n, ok := m.Lookup(key, word)
	if !ok {
		return nil
	}
	if n > 1 {
		m[key][word] = n - 1
		return []Event{{Action: Decrement, Key: key, Word: word, Remaining: n - 1}}
	}
	delete(m[key], word)
	events := []Event{{Action: DeleteWord, Key: key, Word: word}}
	if len(m[key]) == 0 {
		delete(m, key)
		events = append(events, Event{Action: DeleteKey, Key: key})
	}
	return events
}

// Len returns the number of prefix keys.
func (m Model) Len() int {
	return len(m)
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for key, words := range m {
		cp := make(map[string]int, len(words))
		for w, n := range words {
			cp[w] = n
		}
		out[key] = cp
	}
	return out
}

// Validate checks that every key has words and every count is positive.
// Keys are checked in sorted order so the reported key is stable.
func (m Model) Validate() error {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		words := m[key]
		if len(words) == 0 {
			return fmt.Errorf("key %q: %w", key, ErrEmptyPrefix)
		}
		for w, n := range words {
			if n < 1 {
				return fmt.Errorf("key %q word %q count %d: %w", key, w, n, ErrBadCount)
			}
		}
	}
	return nil
}
