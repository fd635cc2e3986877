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
	"strconv"

	"github.com/preflight-sh/preflight"
	"github.com/preflight-sh/preflight/config"
	"github.com/spf13/cobra"
)

var maxBytes int64

var checkAddedLargeFilesCmd = &cobra.Command{
	Use:   "check-added-large-files [FILE ...]",
	Short: "flag files larger than the size limit",
	Long:  `flag files larger than the size limit. Exits 1 when oversized files were found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newRunContext()
		if err != nil {
			return err
		}
		limit := maxBytes
		if !cmd.Flags().Changed("max-bytes") {
			cfg, err := config.Load(profile)
			if err != nil {
				return err
			}
			if cfg.MaxFileSize > 0 {
				limit = cfg.MaxFileSize
			}
		}
		flagged, err := preflight.CheckAddedLargeFiles(c, []string{strconv.FormatInt(limit, 10)}, args)
		if err != nil {
			return err
		}
		return c.ExitErr(flagged)
	},
}

func init() {
	rootCmd.AddCommand(checkAddedLargeFilesCmd)
	checkAddedLargeFilesCmd.Flags().Int64VarP(&maxBytes, "max-bytes", "", preflight.DefaultMaxFileSize, "maximum allowed file size in bytes")
}
