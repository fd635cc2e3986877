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
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/k1LoW/errors"
	"github.com/preflight-sh/preflight"
	"github.com/preflight-sh/preflight/config"
	"github.com/preflight-sh/preflight/logger/dot"
	"github.com/preflight-sh/preflight/version"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	profile   string
	debugMode bool
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:          "preflight",
	Short:        "preflight is a pre-commit hook framework and a small collection of pre-commit hooks",
	Long:         `preflight is a pre-commit hook framework and a small collection of pre-commit hooks.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
}

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, preflight.ErrHookFailed) {
			// Hooks changed files or found violations. That is the exit
			// contract, not a crash worth dumping.
			os.Exit(1)
		}
		// Write stack trace log to state directory
		d := &errorData{
			LatestLogs:  latestLogs(logFilePath(), 20),
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		b, merr := json.Marshal(d)
		if merr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", merr)
		} else {
			dumpPath := filepath.Join(config.StateHomePath(), "error.json")
			if werr := os.WriteFile(dumpPath, b, 0o600); werr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json to %s: %v\n", dumpPath, werr)
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "", false, "do not write changes, only report what would be changed")
}

// newRunContext builds the RunContext shared by hook subcommands.
func newRunContext(opts ...preflight.Option) (*preflight.RunContext, error) {
	opts = append([]preflight.Option{
		preflight.WithDryRun(dryRun),
		preflight.WithDebug(debugMode),
		preflight.WithLogger(newLogger()),
	}, opts...)
	return preflight.New(opts...)
}

// newLogger fans log records out to the console (dot progress, or full text
// lines under --debug) and a JSON log file in the state directory.
func newLogger() *slog.Logger {
	var console slog.Handler
	if debugMode {
		console = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		console = dot.New(slog.NewTextHandler(os.Stdout, nil))
	}
	handlers := []slog.Handler{console}
	if f := openLogFile(); f != nil {
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func logFilePath() string {
	return filepath.Join(config.StateHomePath(), "preflight.log")
}

func openLogFile() *os.File {
	if err := os.MkdirAll(config.StateHomePath(), 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(logFilePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil
	}
	return f
}

// latestLogs returns the last n records of the JSON log file for error dumps.
func latestLogs(path string, n int) []any {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	var logs []any
	for _, line := range lines {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			logs = append(logs, line)
		} else {
			logs = append(logs, m)
		}
	}
	return logs
}
