package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/phanxgames/sprites"
)

const defaultFontSize = 16

// loadAssets fills a catalog from dir: image files become images named after
// the file without extension, font files become faces, and subdirectories of
// numbered frames become animations named after the directory. An empty dir
// yields an empty catalog.
func (c *CLI) loadAssets(dir string) (*sprites.Assets, error) {
	assets := sprites.NewAssets()
	if dir == "" {
		return assets, nil
	}
	return assets, loadAssetsFS(c, assets, os.DirFS(dir))
}

func loadAssetsFS(c *CLI, assets *sprites.Assets, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read assets: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			anim, err := sprites.LoadDirAnimation(fsys, name, sprites.DirOptions{})
			if err != nil {
				c.Logger.Debug("skipping directory", "dir", name, "err", err)
				continue
			}
			assets.AddAnimation(name, anim)
			c.Logger.Debug("loaded animation", "name", name, "frames", anim.Len())
			continue
		}
		ext := strings.ToLower(path.Ext(name))
		base := strings.TrimSuffix(name, path.Ext(name))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".gif":
			if err := assets.LoadImage(fsys, name, base); err != nil {
				return err
			}
			c.Logger.Debug("loaded image", "name", base)
		case ".ttf", ".otf":
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("read font: %w", err)
			}
			if err := assets.LoadFont(base, data, defaultFontSize); err != nil {
				return err
			}
			c.Logger.Debug("loaded font", "name", base)
		}
	}
	return nil
}
