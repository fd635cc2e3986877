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
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/preflight-sh/preflight"
	"github.com/preflight-sh/preflight/config"
	"github.com/spf13/cobra"
)

var (
	lsAll        bool
	lsConfigPath string
)

var lsHooksCmd = &cobra.Command{
	Use:   "ls-hooks",
	Short: "list hooks",
	Long:  `list hooks. By default lists the hooks configured for the project; --all lists every builtin hook.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		if lsAll {
			for _, h := range preflight.BuiltinHooks() {
				kind := "checker"
				if h.Fixer {
					kind = "fixer"
				}
				cmd.Printf("%s %s %s\n", bold(h.ID), gray("("+kind+")"), h.Summary)
			}
			return nil
		}
		proj, err := config.LoadProject(lsConfigPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				cmd.Printf("no project config found at %s (run `preflight init`)\n", lsConfigPath)
				return nil
			}
			return err
		}
		for _, h := range proj.Hooks {
			state := green("enabled")
			if !h.IsEnabled() {
				state = gray("disabled")
			}
			detail := ""
			switch {
			case h.CommandIsInstall() && h.Install != nil:
				detail = gray(h.Install.InstallSummary())
			case h.Command != "":
				detail = gray("command: " + h.Command)
			default:
				if b, ok := preflight.LookupHook(h.ID); ok {
					detail = b.Summary
				}
			}
			cmd.Printf("%s [%s] %s\n", bold(h.ID), state, detail)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsHooksCmd)
	lsHooksCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "list all builtin hooks instead of the project config")
	lsHooksCmd.Flags().StringVarP(&lsConfigPath, "config", "c", config.DefaultProjectConfigPath, "path of project config file")
}
