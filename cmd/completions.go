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
	"io"
	"os"

	"github.com/spf13/cobra"
)

var completionsOut string

var completionsCmd = &cobra.Command{
	Use:       "completions SHELL",
	Short:     "generate shell completions, optionally to a file",
	Long:      `generate shell completions, optionally to a file. SHELL is one of bash, zsh, fish, or powershell.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = os.Stdout
		if completionsOut != "" {
			f, err := os.Create(completionsOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		var err error
		switch args[0] {
		case "bash":
			err = rootCmd.GenBashCompletionV2(w, true)
		case "zsh":
			err = rootCmd.GenZshCompletion(w)
		case "fish":
			err = rootCmd.GenFishCompletion(w, true)
		case "powershell":
			err = rootCmd.GenPowerShellCompletionWithDesc(w)
		}
		if err != nil {
			return err
		}
		if completionsOut != "" {
			cmd.Printf("Wrote %s completions to %s\n", args[0], completionsOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionsCmd)
	completionsCmd.Flags().StringVarP(&completionsOut, "out", "o", "", "write completions to this file instead of stdout")
}
