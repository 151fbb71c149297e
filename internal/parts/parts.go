// Package parts merges per-category part definitions into a single
// library document ordered by the category manifest.
package parts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/udisondev/assetpack/internal/jsonfile"
)

const (
	labelPrefix   = "CATEGORY_"
	partExtension = ".json"
)

// Options locates the part tree and the merged output.
type Options struct {
	Dir        string // one subdirectory per category
	OrderFile  string // {"categoryOrder":["name",...]}
	OutputPath string
}

// LoadOrder reads the ordered category names from the manifest at path.
func LoadOrder(path string) ([]string, error) {
	doc, err := jsonfile.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading category order: %w", err)
	}

	order := gjson.GetBytes(doc, "categoryOrder")
	if !order.IsArray() {
		return nil, fmt.Errorf("category order %s: categoryOrder must be an array", path)
	}

	var names []string
	for i, v := range order.Array() {
		if v.Type != gjson.String || v.Str == "" {
			return nil, fmt.Errorf("category order %s: entry %d is not a category name", path, i)
		}
		names = append(names, v.Str)
	}
	return names, nil
}

// Label returns the display label key of a category.
func Label(name string) string {
	return labelPrefix + strings.ToUpper(name)
}

// Merge builds {"categories":[{"label":...,"parts":[...]},...]} with categories
// in the given order and parts in directory listing order.
func Merge(dir string, order []string) ([]byte, error) {
	out := []byte(`{"categories":[]}`)
	for _, name := range order {
		cat, err := category(filepath.Join(dir, name), name)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "categories.-1", cat); err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
	}
	return out, nil
}

func category(dir, name string) ([]byte, error) {
	cat, err := sjson.SetBytes([]byte(`{}`), "label", Label(name))
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", name, err)
	}
	if cat, err = sjson.SetRawBytes(cat, "parts", []byte(`[]`)); err != nil {
		return nil, fmt.Errorf("category %s: %w", name, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("category %s: listing parts: %w", name, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), partExtension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		slog.Info("packing part", "path", path)

		part, err := jsonfile.Read(path)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		if cat, err = sjson.SetRawBytes(cat, "parts.-1", part); err != nil {
			return nil, fmt.Errorf("category %s: appending %s: %w", name, path, err)
		}
	}

	return cat, nil
}

// Pack merges the part tree and writes the result to opts.OutputPath.
func Pack(opts Options) ([]string, error) {
	slog.Info("packing parts", "output", opts.OutputPath, "dir", opts.Dir)

	order, err := LoadOrder(opts.OrderFile)
	if err != nil {
		return nil, err
	}

	doc, err := Merge(opts.Dir, order)
	if err != nil {
		return nil, err
	}

	if err := jsonfile.Write(opts.OutputPath, doc); err != nil {
		return nil, err
	}
	return []string{opts.OutputPath}, nil
}
