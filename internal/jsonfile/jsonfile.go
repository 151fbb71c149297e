// Package jsonfile reads and writes JSON documents as opaque, compacted bytes.
// Documents are never decoded into Go values, so key order and number
// formatting survive a round trip.
package jsonfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalid is returned for input that is not a single well-formed JSON value.
var ErrInvalid = errors.New("invalid JSON")

// Compact strips a leading UTF-8 BOM, validates data and removes all
// insignificant whitespace.
func Compact(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalid
	}
	return []byte(gjson.GetBytes(data, "@ugly").Raw), nil
}

// Read loads the file at path and returns its compacted contents.
func Read(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Compact(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Write creates the parent directories of path and writes data to it.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
