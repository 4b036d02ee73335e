package blueprint

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/matzehuels/beltprio/pkg/errors"
)

const versionByte = '0'

// Blueprint is a decoded blueprint document.
type Blueprint struct {
	doc      map[string]any
	body     map[string]any
	entities []map[string]any
	byNumber map[int]map[string]any
}

// Decode parses an exchange string. Malformed strings return
// INVALID_BLUEPRINT; blueprint books return UNSUPPORTED.
func Decode(s string) (*Blueprint, error) {
	if err := errors.ValidateBlueprintString(s); err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)

	compressed, err := base64.StdEncoding.DecodeString(s[1:])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "base64")
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "zlib")
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "inflate")
	}
	return Parse(raw)
}

// Parse reads the JSON form of a blueprint, as found inside an exchange
// string.
func Parse(data []byte) (*Blueprint, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "decode")
	}
	body, ok := doc["blueprint"].(map[string]any)
	if !ok {
		if _, book := doc["blueprint_book"]; book {
			return nil, errors.New(errors.ErrCodeUnsupported, "blueprint books are not supported")
		}
		return nil, errors.New(errors.ErrCodeInvalidBlueprint, "missing blueprint object")
	}

	bp := &Blueprint{doc: doc, body: body, byNumber: make(map[int]map[string]any)}
	list, _ := body["entities"].([]any)
	for i, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidBlueprint, "entity %d is not an object", i)
		}
		n, ok := intField(m, "entity_number")
		if !ok || n < 1 {
			return nil, errors.New(errors.ErrCodeInvalidBlueprint, "entity %d has no entity_number", i)
		}
		if _, dup := bp.byNumber[n]; dup {
			return nil, errors.New(errors.ErrCodeInvalidBlueprint, "duplicate entity_number %d", n)
		}
		bp.entities = append(bp.entities, m)
		bp.byNumber[n] = m
	}
	return bp, nil
}

// Label returns the blueprint label, if any.
func (b *Blueprint) Label() string {
	s, _ := b.body["label"].(string)
	return s
}

// Version returns the packed game version (major<<48 | minor<<32 | ...).
func (b *Blueprint) Version() uint64 {
	n, ok := b.body["version"].(json.Number)
	if !ok {
		return 0
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Major returns the game major version the blueprint was saved with.
func (b *Blueprint) Major() int { return int(b.Version() >> 48) }

// Len returns the number of entities in the blueprint, including those
// Grid ignores.
func (b *Blueprint) Len() int { return len(b.entities) }

// Marshal returns the JSON form of the blueprint.
func (b *Blueprint) Marshal() ([]byte, error) {
	data, err := json.Marshal(b.doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Encode returns the blueprint as an exchange string.
func (b *Blueprint) Encode() (string, error) {
	data, err := b.Marshal()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}
	return string(versionByte) + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
