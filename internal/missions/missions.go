// Package missions copies story mission binaries into the distribution tree
// and writes the manifest the game uses to list them.
package missions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"

	"github.com/udisondev/assetpack/internal/jsonfile"
)

// Manifest is the top-level mission manifest.
type Manifest struct {
	Stories []Story `json:"stories"`
}

// Story is one story directory.
type Story struct {
	Label    string    `json:"label"`
	Missions []Mission `json:"missions"`
}

// Mission is one mission binary.
type Mission struct {
	Title string `json:"title"`
	File  string `json:"file"` // slash path relative to the dist root
}

// Options locates the mission trees.
type Options struct {
	SourceDir    string
	DistDir      string
	OutputDir    string // copy destination, normally under DistDir
	ManifestPath string
	Extension    string // e.g. ".bin"
}

// Scan builds the manifest from the copied tree at dir. Immediate
// subdirectories are stories; files ending in ext are missions. File paths
// are prefixed with urlBase.
func Scan(dir, urlBase, ext string) (Manifest, error) {
	m := Manifest{Stories: []Story{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return m, fmt.Errorf("listing stories in %s: %w", dir, err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		story := Story{Label: e.Name(), Missions: []Mission{}}

		files, err := os.ReadDir(filepath.Join(dir, e.Name()))
		if err != nil {
			return m, fmt.Errorf("listing story %s: %w", e.Name(), err)
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ext) {
				continue
			}
			file := path.Join(urlBase, e.Name(), f.Name())
			slog.Info("packing mission", "file", file)
			story.Missions = append(story.Missions, Mission{
				Title: strings.TrimSuffix(f.Name(), ext),
				File:  file,
			})
		}

		m.Stories = append(m.Stories, story)
	}

	return m, nil
}

// Encode renders m as compact JSON without HTML escaping.
func Encode(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Pack replaces opts.OutputDir with a fresh copy of opts.SourceDir and
// writes the manifest describing it.
func Pack(opts Options) ([]string, error) {
	slog.Info("packing missions", "source", opts.SourceDir, "output", opts.OutputDir)

	if err := os.RemoveAll(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("clearing %s: %w", opts.OutputDir, err)
	}
	if err := copy.Copy(opts.SourceDir, opts.OutputDir); err != nil {
		return nil, fmt.Errorf("copying %s to %s: %w", opts.SourceDir, opts.OutputDir, err)
	}

	rel, err := filepath.Rel(opts.DistDir, opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("mission dir %s outside dist %s: %w", opts.OutputDir, opts.DistDir, err)
	}

	m, err := Scan(opts.OutputDir, filepath.ToSlash(rel), opts.Extension)
	if err != nil {
		return nil, err
	}

	doc, err := Encode(m)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", opts.ManifestPath, err)
	}
	if err := jsonfile.Write(opts.ManifestPath, doc); err != nil {
		return nil, err
	}

	return []string{opts.OutputDir, opts.ManifestPath}, nil
}
