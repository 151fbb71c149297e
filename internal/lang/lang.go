// Package lang copies localization files into the distribution tree, minified.
package lang

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/udisondev/assetpack/internal/jsonfile"
)

const fileExtension = ".json"

// Options locates the localization trees.
type Options struct {
	SourceDir string
	OutputDir string
}

// Copy compacts every JSON file under opts.SourceDir into the same relative
// path under opts.OutputDir. Other files are skipped. Any malformed file
// stops the copy.
func Copy(opts Options) ([]string, error) {
	slog.Info("copying language files", "source", opts.SourceDir, "output", opts.OutputDir)

	var written []string
	err := filepath.WalkDir(opts.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), fileExtension) {
			slog.Debug("skipping non-JSON language file", "path", path)
			return nil
		}

		rel, err := filepath.Rel(opts.SourceDir, path)
		if err != nil {
			return err
		}
		slog.Info("language file", "path", rel)

		doc, err := jsonfile.Read(path)
		if err != nil {
			return err
		}

		dest := filepath.Join(opts.OutputDir, rel)
		if err := jsonfile.Write(dest, doc); err != nil {
			return err
		}
		written = append(written, dest)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copying language files: %w", err)
	}

	return written, nil
}
