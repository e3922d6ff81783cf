// Command sheetcalc is a thin CLI/REPL wrapper around the sheet engine.
// It never contains engine logic itself; every subcommand drives the
// public internal/sheet surface.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sheetcalc",
	Short: "A dependency-graph spreadsheet engine",
	Long: `sheetcalc drives an in-memory cell dependency graph: set formulas
and text, read back values and canonical text, and print the sheet's
occupied rectangle. Nothing is persisted across invocations other than
within a single "run" script or "repl" session.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
