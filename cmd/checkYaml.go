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
	"github.com/spf13/cobra"
)

var checkYamlCmd = &cobra.Command{
	Use:   "check-yaml [FILE ...]",
	Short: "verify files parse as YAML",
	Long:  `verify files parse as YAML. Exits 1 when files failed to parse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newRunContext()
		if err != nil {
			return err
		}
		flagged, err := preflight.CheckYAML(c, nil, args)
		if err != nil {
			return err
		}
		return c.ExitErr(flagged)
	},
}

func init() {
	rootCmd.AddCommand(checkYamlCmd)
}
