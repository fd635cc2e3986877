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
	osexec "os/exec"

	"github.com/fatih/color"
	"github.com/k1LoW/exec"
	"github.com/preflight-sh/preflight/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "check that the environment can run hooks",
	Long:  `check that the environment can run hooks.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := color.New(color.FgGreen).SprintFunc()("✓")
		ng := color.New(color.FgRed).SprintFunc()("✗")
		healthy := true
		report := func(name string, err error) {
			if err != nil {
				healthy = false
				cmd.Printf("%s %s: %v\n", ng, name, err)
				return
			}
			cmd.Printf("%s %s\n", ok, name)
		}

		report("git in PATH", func() error {
			_, err := osexec.LookPath("git")
			return err
		}())

		report("inside a git work tree", func() error {
			c := exec.CommandContext(cmd.Context(), "git", "rev-parse", "--is-inside-work-tree")
			c.Stdout = nil
			c.Stderr = nil
			return c.Run()
		}())

		report("project config", func() error {
			if _, err := os.Stat(config.DefaultProjectConfigPath); err != nil {
				return fmt.Errorf("%s not found (run `preflight init`)", config.DefaultProjectConfigPath)
			}
			_, err := config.LoadProject(config.DefaultProjectConfigPath)
			return err
		}())

		report("shell available", func() error {
			if sh := os.Getenv("SHELL"); sh != "" {
				if _, err := os.Stat(sh); err == nil {
					return nil
				}
			}
			for _, sh := range []string{"/bin/bash", "/bin/sh"} {
				if _, err := os.Stat(sh); err == nil {
					return nil
				}
			}
			return fmt.Errorf("no usable shell found")
		}())

		report("state directory writable", func() error {
			return os.MkdirAll(config.StateHomePath(), 0755)
		}())

		if !healthy {
			return fmt.Errorf("environment has problems")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
