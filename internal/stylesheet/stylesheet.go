// Package stylesheet turns the GUI atlas into CSS sprite classes.
//
// Every sprite gets a ".sprite.<name>" class positioning the shared atlas
// image. Multi-state sprites ("<name>_0", "_1", "_2") additionally get
// :hover and :active rules that move the background but keep the size of
// the neutral frame.
package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/udisondev/assetpack/internal/atlas"
)

// ErrMissingBaseFrame is returned for a multi-state sprite without its "_0" frame.
var ErrMissingBaseFrame = errors.New("missing neutral frame")

const (
	baseClass = ".sprite"

	stateNeutral = "0"
	stateHover   = "1"
	stateActive  = "2"
)

// Options controls rule rendering.
type Options struct {
	ImageURL string // atlas image as referenced from the stylesheet
	Scale    int    // integer display scale; values below 1 mean 1
}

// Generate renders the stylesheet for d.
func Generate(d *atlas.Descriptor, opts Options) (string, error) {
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}

	var b strings.Builder
	writeRule(&b, baseClass, fmt.Sprintf(
		"background:url(%s);background-size:%dpx %dpx;image-rendering:pixelated;",
		opts.ImageURL, d.Width*scale, d.Height*scale))

	emitted := make(map[string]bool)
	for _, f := range d.Frames {
		title, state, ok := atlas.SplitName(f.Name)
		if !ok {
			return "", fmt.Errorf("frame %q: no %q delimiter", f.Name, atlas.StateDelimiter)
		}

		if state == "" {
			writeRegion(&b, title, f.Rect, scale)
			continue
		}

		if emitted[title] {
			continue
		}
		emitted[title] = true

		neutral, ok := d.Lookup(title + atlas.StateDelimiter + stateNeutral)
		if !ok {
			return "", fmt.Errorf("sprite %q: %w", title, ErrMissingBaseFrame)
		}
		writeRegion(&b, title, neutral.Rect, scale)

		hover, ok := d.Lookup(title + atlas.StateDelimiter + stateHover)
		if !ok {
			continue
		}
		writePosition(&b, title+":hover", hover.Rect, scale)

		if active, ok := d.Lookup(title + atlas.StateDelimiter + stateActive); ok {
			writePosition(&b, title+":active", active.Rect, scale)
		}
	}

	return b.String(), nil
}

func writeRule(b *strings.Builder, selector, body string) {
	b.WriteString(selector)
	b.WriteByte('{')
	b.WriteString(body)
	b.WriteByte('}')
}

// Background position is the negated atlas placement.
func position(r atlas.Rect, scale int) string {
	return fmt.Sprintf("background-position:%dpx %dpx;", -r.X*scale, -r.Y*scale)
}

func writeRegion(b *strings.Builder, name string, r atlas.Rect, scale int) {
	writeRule(b, baseClass+"."+name,
		position(r, scale)+fmt.Sprintf("width:%dpx;height:%dpx;", r.W*scale, r.H*scale))
}

func writePosition(b *strings.Builder, selector string, r atlas.Rect, scale int) {
	writeRule(b, baseClass+"."+selector, position(r, scale))
}

// Packer produces an atlas descriptor and image from a sprite source tree.
type Packer interface {
	Pack(ctx context.Context, root, dataPath, sheetPath string) error
}

// BuildOptions locates the GUI sprite tree and the build outputs.
type BuildOptions struct {
	SourceDir      string
	ImagePath      string
	StylesheetPath string
	ImageURL       string // empty: base name of ImagePath
	Scale          int
}

// Build packs the GUI sprites, writes the stylesheet and returns the written
// artifacts. The descriptor lives in a temp dir and is removed afterwards.
func Build(ctx context.Context, p Packer, opts BuildOptions) ([]string, error) {
	tmp, err := os.MkdirTemp("", "assetpack-gui-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	dataPath := filepath.Join(tmp, "atlas-gui.json")
	if err := p.Pack(ctx, opts.SourceDir, dataPath, opts.ImagePath); err != nil {
		return nil, err
	}

	desc, err := atlas.Load(dataPath)
	if err != nil {
		return nil, err
	}

	url := opts.ImageURL
	if url == "" {
		url = filepath.Base(opts.ImagePath)
	}
	css, err := Generate(desc, Options{ImageURL: url, Scale: opts.Scale})
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", opts.StylesheetPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.StylesheetPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", opts.StylesheetPath, err)
	}
	if err := os.WriteFile(opts.StylesheetPath, []byte(css), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", opts.StylesheetPath, err)
	}

	slog.Info("stylesheet written", "path", opts.StylesheetPath, "frames", len(desc.Frames))
	return []string{opts.ImagePath, opts.StylesheetPath}, nil
}
