package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// PackerCall records one invocation seen by FakeRunner.
type PackerCall struct {
	Name string
	Args []string
}

// Flag returns the value following flag in the call's args.
func (c PackerCall) Flag(flag string) string {
	for i := 0; i+1 < len(c.Args); i++ {
		if c.Args[i] == flag {
			return c.Args[i+1]
		}
	}
	return ""
}

// Inputs returns the source files passed between "-b" and the first option.
func (c PackerCall) Inputs() []string {
	var in []string
	for i, a := range c.Args {
		if i == 0 && a == "-b" {
			continue
		}
		if len(a) > 1 && a[0] == '-' {
			break
		}
		in = append(in, a)
	}
	return in
}

// FakeRunner emulates the atlas packer: it records calls and writes
// Descriptor to the --data path and Image to the --sheet path.
type FakeRunner struct {
	Descriptor string
	Image      []byte
	Err        error

	mu    sync.Mutex
	calls []PackerCall
}

// Run implements the packer runner contract.
func (f *FakeRunner) Run(_ context.Context, name string, args []string) error {
	call := PackerCall{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}

	if p := call.Flag("--data"); p != "" {
		if err := writeFile(p, []byte(f.Descriptor)); err != nil {
			return err
		}
	}
	if p := call.Flag("--sheet"); p != "" {
		img := f.Image
		if img == nil {
			img = []byte("\x89PNG fake")
		}
		if err := writeFile(p, img); err != nil {
			return err
		}
	}
	return nil
}

// Calls returns the recorded invocations.
func (f *FakeRunner) Calls() []PackerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PackerCall(nil), f.calls...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
