package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sheetcalc/internal/sheet"
)

const prompt = "sheetcalc> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session against a fresh sheet",
	Long: `Repl starts an interactive Read-Eval-Print loop over a single
in-memory sheet. Type "help" for the command list and "quit" to exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runREPL(os.Stdin, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(in io.Reader, out io.Writer) {
	sessionID := uuid.New().String()
	sessionLog := log.WithField("session", sessionID)
	sessionLog.Debug("repl session started")

	fmt.Fprintln(out, "sheetcalc interactive session. Type \"help\" for commands, \"quit\" to exit.")

	sh := sheet.New()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := Dispatch(sh, line, out)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			sessionLog.WithError(err).Warn("command failed")
			continue
		}
		if quit {
			break
		}
	}
	sessionLog.Debug("repl session ended")
	fmt.Fprintln(out, "goodbye")
}
