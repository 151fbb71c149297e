// Package aseprite drives the Aseprite command line to pack sprite sources
// into one atlas image plus a JSON descriptor.
package aseprite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NamingFormat names atlas frames "<file title>_<frame index>".
// Single-frame sources get an empty index ("title_").
const NamingFormat = "{title}_{frame}"

// DefaultExtension is the sprite source suffix.
const DefaultExtension = ".aseprite"

// ErrNoSources is returned when a tree holds no sprite sources at all.
var ErrNoSources = errors.New("no sprite sources found")

// FindSources walks root recursively and returns one glob pattern per directory
// that directly contains at least one file ending in ext. Directories without
// sources contribute nothing. Patterns are in lexical walk order.
func FindSources(root, ext string) ([]string, error) {
	var patterns []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("listing %s: %w", path, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
				patterns = append(patterns, filepath.Join(path, "*"+ext))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning sprite sources in %s: %w", root, err)
	}

	return patterns, nil
}

// Invocation is a single batch run of the packer.
type Invocation struct {
	Binary    string
	Sources   []string // glob patterns, one per source directory
	DataPath  string
	SheetPath string
}

// Args returns the packer arguments with every source pattern expanded,
// matches sorted within a pattern as a shell would.
func (inv Invocation) Args() ([]string, error) {
	args := []string{"-b"}
	for _, pattern := range inv.Sources {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", pattern, err)
		}
		sort.Strings(matches)
		args = append(args, matches...)
	}
	return append(args,
		"--data", inv.DataPath,
		"--sheet-pack",
		"--sheet", inv.SheetPath,
		"--filename-format", NamingFormat,
	), nil
}

// Runner executes an external command, blocking until it exits.
type Runner interface {
	Run(ctx context.Context, name string, args []string) error
}

// Packer packs sprite source trees with a Runner.
type Packer struct {
	binary    string
	extension string
	runner    Runner
}

// NewPacker creates a Packer invoking binary through runner.
// An empty extension selects DefaultExtension.
func NewPacker(binary, extension string, runner Runner) *Packer {
	if extension == "" {
		extension = DefaultExtension
	}
	return &Packer{binary: binary, extension: extension, runner: runner}
}

// Plan builds the invocation for root without running it.
func (p *Packer) Plan(root, dataPath, sheetPath string) (Invocation, error) {
	sources, err := FindSources(root, p.extension)
	if err != nil {
		return Invocation{}, err
	}
	if len(sources) == 0 {
		return Invocation{}, fmt.Errorf("%s: %w", root, ErrNoSources)
	}
	return Invocation{
		Binary:    p.binary,
		Sources:   sources,
		DataPath:  dataPath,
		SheetPath: sheetPath,
	}, nil
}

// Pack packs every sprite source under root into sheetPath (image) and
// dataPath (descriptor). The packer runs exactly once; its failure is returned as is.
func (p *Packer) Pack(ctx context.Context, root, dataPath, sheetPath string) error {
	inv, err := p.Plan(root, dataPath, sheetPath)
	if err != nil {
		return err
	}

	slog.Info("packing sprites", "data", dataPath, "sheet", sheetPath, "dirs", len(inv.Sources))
	for _, src := range inv.Sources {
		slog.Info("sprite source", "dir", filepath.Dir(src))
	}

	for _, out := range []string{dataPath, sheetPath} {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", out, err)
		}
	}

	args, err := inv.Args()
	if err != nil {
		return err
	}
	if err := p.runner.Run(ctx, inv.Binary, args); err != nil {
		return fmt.Errorf("running %s: %w", inv.Binary, err)
	}

	return nil
}
