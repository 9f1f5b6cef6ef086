package store

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
	"github.com/oarkflow/json"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/oarkflow/chainpurge/nlp/ngram"
)

// ErrInvalidChain is wrapped by every load failure caused by file content.
var ErrInvalidChain = errors.New("invalid chain")

// chainSchemaJSON describes an object of objects of positive integers where
// no inner object is empty.
var chainSchemaJSON = []byte(`{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"minProperties": 1,
		"additionalProperties": {
			"type": "integer",
			"minimum": 1
		}
	}
}`)

var chainSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.NewCompiler().Compile(chainSchemaJSON)
})

// Codec converts a chain to and from its on-disk bytes.
type Codec interface {
	Name() string
	Encode(m ngram.Model) ([]byte, error)
	Decode(data []byte) (ngram.Model, error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(m ngram.Model) ([]byte, error) {
	if m == nil {
		m = ngram.Model{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Decode(data []byte) (ngram.Model, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChain, err)
	}
	schema, err := chainSchema()
	if err != nil {
		return nil, fmt.Errorf("compile chain schema: %w", err)
	}
	if result := schema.Validate(raw); !result.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChain, result.Errors)
	}
	return modelFromRaw(raw)
}

// modelFromRaw converts a decoded document that already passed the schema.
func modelFromRaw(raw any) (ngram.Model, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is not an object", ErrInvalidChain)
	}
	m := make(ngram.Model, len(doc))
	for key, v := range doc {
		words, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: key %q is not an object", ErrInvalidChain, key)
		}
		counts := make(map[string]int, len(words))
		for w, c := range words {
			n, ok := toCount(c)
			if !ok {
				return nil, fmt.Errorf("%w: key %q word %q: count %v is not an integer", ErrInvalidChain, key, w, c)
			}
			counts[w] = n
		}
		m[key] = counts
	}
	return m, nil
}

func toCount(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case uint64:
		return int(n), true
	}
	return 0, false
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) Encode(m ngram.Model) ([]byte, error) {
	if m == nil {
		m = ngram.Model{}
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(map[string]map[string]int(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Decode(data []byte) (ngram.Model, error) {
	var m ngram.Model
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChain, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: document is not a map", ErrInvalidChain)
	}
	return m, nil
}

// CodecFor picks the codec from the file extension; anything that is not
// msgpack is treated as JSON.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return msgpackCodec{}
	}
	return jsonCodec{}
}

// ChainStore reads and rewrites a chain file in one piece.
type ChainStore struct {
	path  string
	codec Codec
}

func New(path string) *ChainStore {
	return &ChainStore{path: path, codec: CodecFor(path)}
}

func (s *ChainStore) Path() string { return s.path }

func (s *ChainStore) Codec() Codec { return s.codec }

// Load reads and decodes the whole chain file.
func (s *ChainStore) Load() (ngram.Model, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	m, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w: %w", s.path, ErrInvalidChain, err)
	}
	return m, nil
}

// Save encodes m and overwrites the chain file. Nothing is written if
// encoding fails.
func (s *ChainStore) Save(m ngram.Model) error {
	data, err := s.codec.Encode(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}
