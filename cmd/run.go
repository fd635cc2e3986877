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
	"github.com/preflight-sh/preflight"
	"github.com/preflight-sh/preflight/config"
	"github.com/spf13/cobra"
)

var (
	projectConfigPath string
	changelogPath     string
	noChangelog       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run all hooks configured for the project",
	Long:  `run all hooks configured for the project.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := config.LoadProject(projectConfigPath)
		if err != nil {
			return err
		}
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		opts := []preflight.Option{}
		switch {
		case noChangelog, cfg.Changelog != nil && !*cfg.Changelog:
			opts = append(opts, preflight.WithChangelogPath(""))
		case changelogPath != "":
			opts = append(opts, preflight.WithChangelogPath(changelogPath))
		}
		c, err := newRunContext(opts...)
		if err != nil {
			return err
		}
		return preflight.Run(cmd.Context(), c, proj)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&projectConfigPath, "config", "c", config.DefaultProjectConfigPath, "path of project config file")
	runCmd.Flags().StringVarP(&changelogPath, "changelog", "", preflight.DefaultChangelogPath, "path of changelog file")
	runCmd.Flags().BoolVarP(&noChangelog, "no-changelog", "", false, "do not write the changelog file")
}
