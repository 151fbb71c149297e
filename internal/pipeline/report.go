package pipeline

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Report lists what a build wrote.
type Report struct {
	Steps []StepReport `yaml:"steps"`
}

// StepReport is one finished step.
type StepReport struct {
	Name      string     `yaml:"name"`
	Took      string     `yaml:"took"`
	Artifacts []Artifact `yaml:"artifacts"`
}

// Artifact is one written file.
type Artifact struct {
	Path    string `yaml:"path"`
	Size    int64  `yaml:"size"`
	BLAKE2b string `yaml:"blake2b"` // hex BLAKE2b-256 of the contents
}

// Describe stats and hashes paths. Directories expand to the files under them.
func Describe(paths []string) ([]Artifact, error) {
	var out []Artifact
	for _, p := range paths {
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			a, err := describeFile(path)
			if err != nil {
				return err
			}
			out = append(out, a)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("describing artifact %s: %w", p, err)
		}
	}
	return out, nil
}

func describeFile(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return Artifact{}, err
	}
	n, err := io.Copy(h, f)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{Path: path, Size: n, BLAKE2b: hex.EncodeToString(h.Sum(nil))}, nil
}

// WriteReport writes r as YAML to path.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
