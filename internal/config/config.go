package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Pack holds all configuration for an asset build.
// Relative paths are resolved against the working directory.
type Pack struct {
	LogLevel string `yaml:"log_level"`

	// DistDir is the distribution root; mission file paths are written relative to it.
	DistDir string `yaml:"dist_dir"`

	Aseprite AsepriteConfig `yaml:"aseprite"`
	Sprites  SpritesConfig  `yaml:"sprites"`
	GUI      GUIConfig      `yaml:"gui"`
	Parts    PartsConfig    `yaml:"parts"`
	Lang     LangConfig     `yaml:"lang"`
	Missions MissionsConfig `yaml:"missions"`
	Mods     ModsConfig     `yaml:"mods"`
}

// AsepriteConfig describes the external atlas packer.
type AsepriteConfig struct {
	Binary    string `yaml:"binary"`
	Extension string `yaml:"extension"` // sprite source suffix, e.g. ".aseprite"
}

// SpritesConfig is the game sprite atlas. Its descriptor is a build artifact.
type SpritesConfig struct {
	SourceDir string `yaml:"source_dir"`
	DataPath  string `yaml:"data_path"`
	ImagePath string `yaml:"image_path"`
}

// GUIConfig is the interface atlas and the stylesheet derived from it.
type GUIConfig struct {
	SourceDir      string `yaml:"source_dir"`
	ImagePath      string `yaml:"image_path"`
	StylesheetPath string `yaml:"stylesheet_path"`
	ImageURL       string `yaml:"image_url"` // empty: base name of ImagePath
	Scale          int    `yaml:"scale"`
}

// PartsConfig locates part categories and the category order manifest.
type PartsConfig struct {
	Dir        string `yaml:"dir"`
	OrderFile  string `yaml:"order_file"`
	OutputPath string `yaml:"output_path"`
}

// LangConfig locates localization files.
type LangConfig struct {
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`
}

// MissionsConfig locates the mission tree and its manifest.
type MissionsConfig struct {
	SourceDir    string `yaml:"source_dir"`
	OutputDir    string `yaml:"output_dir"`
	ManifestPath string `yaml:"manifest_path"`
	Extension    string `yaml:"extension"`
}

// ModsConfig locates mod directories and their archives.
type ModsConfig struct {
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`
	Jobs      int    `yaml:"jobs"` // concurrent archives (default: 1)
}

// DefaultPack returns Pack config laid out like the project source tree.
func DefaultPack() Pack {
	return Pack{
		LogLevel: "info",
		DistDir:  "dist",
		Aseprite: AsepriteConfig{
			Binary:    "aseprite",
			Extension: ".aseprite",
		},
		Sprites: SpritesConfig{
			SourceDir: "src/assets/sprites",
			DataPath:  "src/assets/atlas.json",
			ImagePath: "dist/atlas.png",
		},
		GUI: GUIConfig{
			SourceDir:      "src/assets/gui",
			ImagePath:      "dist/gui.png",
			StylesheetPath: "src/styles/gui.css",
			Scale:          2,
		},
		Parts: PartsConfig{
			Dir:        "src/assets/parts",
			OrderFile:  "src/assets/parts/order.json",
			OutputPath: "src/assets/parts.json",
		},
		Lang: LangConfig{
			SourceDir: "src/assets/text",
			OutputDir: "dist",
		},
		Missions: MissionsConfig{
			SourceDir:    "src/assets/missions",
			OutputDir:    "dist/missions",
			ManifestPath: "src/assets/missions.json",
			Extension:    ".bin",
		},
		Mods: ModsConfig{
			SourceDir: "mods",
			OutputDir: "dist/mods",
			Jobs:      1,
		},
	}
}

// Validate reports settings no step can work with.
func (p Pack) Validate() error {
	if p.Aseprite.Binary == "" {
		return fmt.Errorf("aseprite.binary is required")
	}
	if p.GUI.Scale < 1 {
		return fmt.Errorf("gui.scale must be >= 1, got %d", p.GUI.Scale)
	}
	if p.Mods.Jobs < 1 {
		return fmt.Errorf("mods.jobs must be >= 1, got %d", p.Mods.Jobs)
	}
	return nil
}

// Resolve returns a copy of p with every relative path joined onto root.
func (p Pack) Resolve(root string) Pack {
	join := func(s *string) {
		if *s != "" && !filepath.IsAbs(*s) {
			*s = filepath.Join(root, *s)
		}
	}
	for _, s := range []*string{
		&p.DistDir,
		&p.Sprites.SourceDir, &p.Sprites.DataPath, &p.Sprites.ImagePath,
		&p.GUI.SourceDir, &p.GUI.ImagePath, &p.GUI.StylesheetPath,
		&p.Parts.Dir, &p.Parts.OrderFile, &p.Parts.OutputPath,
		&p.Lang.SourceDir, &p.Lang.OutputDir,
		&p.Missions.SourceDir, &p.Missions.OutputDir, &p.Missions.ManifestPath,
		&p.Mods.SourceDir, &p.Mods.OutputDir,
	} {
		join(s)
	}
	return p
}

// LoadPack loads asset build config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPack(path string) (Pack, error) {
	cfg := DefaultPack()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
