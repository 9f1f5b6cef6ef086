package tokenizer

import (
	"io"
	"strings"
)

// Words splits text on runs of Unicode whitespace. Case and punctuation are kept.
func Words(text string) []string {
	return strings.Fields(text)
}

// ReadWords reads r to EOF and splits the whole text into words.
func ReadWords(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Words(string(data)), nil
}
