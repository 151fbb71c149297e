package pipeline

import (
	"context"

	"github.com/udisondev/assetpack/internal/lang"
	"github.com/udisondev/assetpack/internal/missions"
	"github.com/udisondev/assetpack/internal/mods"
	"github.com/udisondev/assetpack/internal/parts"
	"github.com/udisondev/assetpack/internal/stylesheet"
)

// Standard returns the asset build steps in run order.
func Standard() *Registry {
	r := &Registry{}
	r.Register("sprites", "Game sprite atlas (image + descriptor)", true, packSprites)
	r.Register("gui", "GUI atlas image and sprite stylesheet", true, packGUI)
	r.Register("parts", "Merged part library ordered by category manifest", true, packParts)
	r.Register("lang", "Minified localization files", true, copyLang)
	r.Register("missions", "Mission binaries and story manifest", true, packMissions)
	r.Register("mods", "One zip archive per mod directory", false, packMods)
	return r
}

func packSprites(ctx context.Context, env *Env) ([]string, error) {
	c := env.Config.Sprites
	if err := env.Packer.Pack(ctx, c.SourceDir, c.DataPath, c.ImagePath); err != nil {
		return nil, err
	}
	return []string{c.DataPath, c.ImagePath}, nil
}

func packGUI(ctx context.Context, env *Env) ([]string, error) {
	c := env.Config.GUI
	return stylesheet.Build(ctx, env.Packer, stylesheet.BuildOptions{
		SourceDir:      c.SourceDir,
		ImagePath:      c.ImagePath,
		StylesheetPath: c.StylesheetPath,
		ImageURL:       c.ImageURL,
		Scale:          c.Scale,
	})
}

func packParts(_ context.Context, env *Env) ([]string, error) {
	c := env.Config.Parts
	return parts.Pack(parts.Options{Dir: c.Dir, OrderFile: c.OrderFile, OutputPath: c.OutputPath})
}

func copyLang(_ context.Context, env *Env) ([]string, error) {
	c := env.Config.Lang
	return lang.Copy(lang.Options{SourceDir: c.SourceDir, OutputDir: c.OutputDir})
}

func packMissions(_ context.Context, env *Env) ([]string, error) {
	c := env.Config.Missions
	return missions.Pack(missions.Options{
		SourceDir:    c.SourceDir,
		DistDir:      env.Config.DistDir,
		OutputDir:    c.OutputDir,
		ManifestPath: c.ManifestPath,
		Extension:    c.Extension,
	})
}

func packMods(ctx context.Context, env *Env) ([]string, error) {
	c := env.Config.Mods
	return mods.Pack(ctx, mods.Options{SourceDir: c.SourceDir, OutputDir: c.OutputDir, Jobs: c.Jobs})
}
