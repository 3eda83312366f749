package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprites"
)

func (c *CLI) validateCommand() *cobra.Command {
	var assetDir string

	cmd := &cobra.Command{
		Use:   "validate <sheet.toml>...",
		Short: "Resolve every state of the given sheets and report problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := c.loadAssets(assetDir)
			if err != nil {
				return err
			}
			failed := 0
			for _, p := range args {
				if err := validateSheet(p, assets); err != nil {
					failed++
					c.Logger.Error("invalid sheet", "file", p)
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					continue
				}
				c.Logger.Info("ok", "file", p)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sheets invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&assetDir, "assets", "a", "", "directory of images, fonts and animation folders")
	return cmd
}

func validateSheet(path string, assets *sprites.Assets) error {
	sh, err := sprites.LoadSheetFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return err
	}
	if err := sh.Validate(assets); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
