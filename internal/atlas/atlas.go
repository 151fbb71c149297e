// Package atlas reads the JSON descriptor written by the sprite packer:
// canvas size plus named frame rectangles, in the order the packer emitted them.
package atlas

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// StateDelimiter separates a sprite title from its frame index ("{title}_{frame}").
const StateDelimiter = "_"

// Rect is a frame's placement on the atlas canvas, in pixels.
type Rect struct {
	X, Y, W, H int
}

// Frame is one named sub-rectangle of the atlas.
type Frame struct {
	Name string
	Rect Rect
}

// Descriptor is a parsed atlas descriptor.
type Descriptor struct {
	Width  int
	Height int
	Frames []Frame
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading atlas %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing atlas %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a hash-form descriptor ({"frames":{name:{"frame":{...}}},"meta":{"size":{...}}}).
func Parse(data []byte) (*Descriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("malformed JSON")
	}
	doc := gjson.ParseBytes(data)

	size := doc.Get("meta.size")
	if !size.Get("w").Exists() || !size.Get("h").Exists() {
		return nil, fmt.Errorf("missing meta.size")
	}

	frames := doc.Get("frames")
	if !frames.IsObject() {
		return nil, fmt.Errorf("frames must be an object keyed by frame name")
	}

	d := &Descriptor{
		Width:  int(size.Get("w").Int()),
		Height: int(size.Get("h").Int()),
	}

	var parseErr error
	frames.ForEach(func(key, value gjson.Result) bool {
		r := value.Get("frame")
		for _, k := range []string{"x", "y", "w", "h"} {
			if !r.Get(k).Exists() {
				parseErr = fmt.Errorf("frame %q: missing frame.%s", key.String(), k)
				return false
			}
		}
		d.Frames = append(d.Frames, Frame{
			Name: key.String(),
			Rect: Rect{
				X: int(r.Get("x").Int()),
				Y: int(r.Get("y").Int()),
				W: int(r.Get("w").Int()),
				H: int(r.Get("h").Int()),
			},
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return d, nil
}

// Lookup returns the frame with the given name.
func (d *Descriptor) Lookup(name string) (Frame, bool) {
	for _, f := range d.Frames {
		if f.Name == name {
			return f, true
		}
	}
	return Frame{}, false
}

// SplitName splits a frame name at its last delimiter into sprite title and state.
// Single-frame sprites have an empty state ("button_" → "button", "").
// Names without a delimiter are returned whole with ok=false.
func SplitName(name string) (title, state string, ok bool) {
	i := strings.LastIndex(name, StateDelimiter)
	if i < 0 {
		return name, "", false
	}
	return name[:i], name[i+len(StateDelimiter):], true
}
