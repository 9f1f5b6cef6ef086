package ngram

import "strings"

// Start is the sentinel token that marks the beginning of a message.
const Start = "START"

// DefaultPrefixLen is the window size the chain is trained with.
const DefaultPrefixLen = 2

// MaxPrefixLen bounds the window size accepted from configuration.
const MaxPrefixLen = 16

// Window is the rolling context of preceding tokens. Empty slots are
// placeholders that have not been filled by a real token yet.
type Window []string

// NewWindow returns a window of n slots: n-1 placeholders followed by Start.
func NewWindow(n int) Window {
	w := make(Window, n)
	w[n-1] = Start
	return w
}

// Keys returns the prefix keys for the current window, longest first.
// Tails that begin with a placeholder are skipped, and so is the empty tail.
func (w Window) Keys(fold Folder) []string {
	keys := make([]string, 0, len(w))
	for i := 0; i < len(w); i++ {
		if w[i] == "" {
			continue
		}
		keys = append(keys, fold(strings.Join(w[i:], " ")))
	}
	return keys
}

// Shift removes the first token from the window and appends word as is.
func (w Window) Shift(word string) {
	copy(w, w[1:])
	w[len(w)-1] = word
}
