package ngram

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Folder maps a joined prefix to the form stored in the chain.
type Folder func(string) string

// SimpleFold lowercases with strings.ToLower, the same folding the Go trainer uses.
func SimpleFold(s string) string {
	return strings.ToLower(s)
}

// UnicodeFold applies full Unicode lowercasing, including the special
// mappings that expand one rune into several.
func UnicodeFold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// FolderFor returns the folder registered under name.
func FolderFor(name string) (Folder, error) {
	switch name {
	case "", "simple":
		return SimpleFold, nil
	case "unicode":
		return UnicodeFold, nil
	}
	return nil, fmt.Errorf("unknown key case %q", name)
}
