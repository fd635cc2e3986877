/*
Copyright © 2025 Preflight Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/preflight-sh/preflight/pngen"
	"github.com/spf13/cobra"
)

// defaultIcons are written when gen-png is invoked without arguments.
var defaultIcons = []struct {
	path          string
	width, height int
}{
	{filepath.Join("assets", "icon-512.png"), 512, 512},
	{filepath.Join("assets", "icon-256.png"), 256, 256},
	{filepath.Join("assets", "icon.png"), 256, 256},
}

var genPngCmd = &cobra.Command{
	Use:   "gen-png [WIDTH HEIGHT OUT]",
	Short: "generate a fully transparent RGBA PNG",
	Long:  `generate a fully transparent RGBA PNG. Without arguments, writes the default icon set under assets/.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 3 {
			return fmt.Errorf("accepts either no arguments or WIDTH HEIGHT OUT, received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 3 {
			width, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid width %q: %w", args[0], err)
			}
			height, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid height %q: %w", args[1], err)
			}
			if err := pngen.WriteFile(args[2], width, height); err != nil {
				return err
			}
			cmd.Printf("Wrote %s (%dx%d)\n", args[2], width, height)
			return nil
		}
		if err := os.MkdirAll("assets", 0755); err != nil {
			return err
		}
		for _, icon := range defaultIcons {
			if err := pngen.WriteFile(icon.path, icon.width, icon.height); err != nil {
				return err
			}
			cmd.Printf("Wrote %s (%dx%d)\n", icon.path, icon.width, icon.height)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genPngCmd)
}
