package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sheetcalc/internal/sheet"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a script of session commands against a fresh sheet",
	Long: `Run reads a script file of one command per line (set, get, clear,
print) and executes them in order against a single in-memory sheet,
writing command output to stdout. Blank lines and lines starting with
"#" are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	sh := sheet.New()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := Dispatch(sh, line, os.Stdout)
		if err != nil {
			log.WithFields(logrus.Fields{"line": lineNo}).Errorf("command failed: %v", err)
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if quit {
			break
		}
	}
	return scanner.Err()
}
