// Package mods zips every mod directory into the distribution tree.
package mods

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

const archiveExtension = ".zip"

// Options locates the mods and their archives.
type Options struct {
	SourceDir string
	OutputDir string
	Jobs      int // archives built concurrently; below 1 means 1
}

// Archive writes the full contents of dir to a zip at dest. Entry names are
// slash paths relative to dir; directories get their own entries.
func Archive(dir, dest string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", dest, cerr)
		}
	}()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		return addEntry(zw, dir, path, d)
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", dir, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", dest, err)
	}
	return nil
}

func addEntry(zw *zip.Writer, root, path string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	if d.IsDir() {
		hdr.Name += "/"
		hdr.Method = zip.Store
	} else {
		hdr.Method = zip.Deflate
	}

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	if d.IsDir() {
		return nil
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}

// Pack archives each immediate subdirectory of opts.SourceDir as
// <OutputDir>/<name>.zip. Archives are returned in directory name order.
func Pack(ctx context.Context, opts Options) ([]string, error) {
	slog.Info("zipping mods", "source", opts.SourceDir, "output", opts.OutputDir)

	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("listing mods in %s: %w", opts.SourceDir, err)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.OutputDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	archives := make([]string, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, name := range names {
		i, name := i, name
		archives[i] = filepath.Join(opts.OutputDir, name+archiveExtension)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := Archive(filepath.Join(opts.SourceDir, name), archives[i]); err != nil {
				return fmt.Errorf("mod %s: %w", name, err)
			}
			slog.Info("mod zipped", "archive", archives[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return archives, nil
}
