package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"sheetcalc/internal/cellref"
	"sheetcalc/internal/sheet"
)

// Dispatch parses and runs a single session command against sh,
// writing any output to out. It reports quit=true when the caller
// should stop the session (the "quit" command).
func Dispatch(sh *sheet.Sheet, line string, out io.Writer) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", ":quit", ":q":
		return true, nil
	case "help", ":help":
		printHelp(out)
		return false, nil
	case "set":
		return false, dispatchSet(sh, fields, out)
	case "get":
		return false, dispatchGet(sh, fields, out)
	case "clear":
		return false, dispatchClear(sh, fields, out)
	case "print":
		return false, dispatchPrint(sh, fields, out)
	default:
		return false, fmt.Errorf("unknown command %q (try: set, get, clear, print, help, quit)", fields[0])
	}
}

func dispatchSet(sh *sheet.Sheet, fields []string, out io.Writer) error {
	if len(fields) < 2 {
		return fmt.Errorf("usage: set <cell> [text]")
	}
	pos, ok := cellref.Parse(fields[1])
	if !ok {
		return fmt.Errorf("invalid cell reference %q", fields[1])
	}
	text := ""
	if len(fields) > 2 {
		text = strings.Join(fields[2:], " ")
	}
	if err := sh.SetCell(pos, text); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"cell": pos.String(), "text": text}).Debug("set cell")
	return nil
}

func dispatchGet(sh *sheet.Sheet, fields []string, out io.Writer) error {
	if len(fields) != 2 {
		return fmt.Errorf("usage: get <cell>")
	}
	pos, ok := cellref.Parse(fields[1])
	if !ok {
		return fmt.Errorf("invalid cell reference %q", fields[1])
	}
	h, err := sh.GetCell(pos)
	if err != nil {
		return err
	}
	if h == nil {
		fmt.Fprintln(out, "(empty)")
		return nil
	}
	fmt.Fprintf(out, "text:  %s\n", h.GetText())
	fmt.Fprintf(out, "value: %s\n", h.GetValue().String())
	return nil
}

func dispatchClear(sh *sheet.Sheet, fields []string, out io.Writer) error {
	if len(fields) != 2 {
		return fmt.Errorf("usage: clear <cell>")
	}
	pos, ok := cellref.Parse(fields[1])
	if !ok {
		return fmt.Errorf("invalid cell reference %q", fields[1])
	}
	if err := sh.ClearCell(pos); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"cell": pos.String()}).Debug("cleared cell")
	return nil
}

func dispatchPrint(sh *sheet.Sheet, fields []string, out io.Writer) error {
	mode := sheet.PrintText
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "text":
			mode = sheet.PrintText
		case "values":
			mode = sheet.PrintValues
		default:
			return fmt.Errorf("usage: print [text|values]")
		}
	}
	return sh.Print(out, mode)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  set <cell> <text>    set a cell's content (empty text clears it)")
	fmt.Fprintln(out, "  get <cell>           show a cell's text and value")
	fmt.Fprintln(out, "  clear <cell>         clear a cell")
	fmt.Fprintln(out, "  print [text|values]  print the occupied rectangle")
	fmt.Fprintln(out, "  help                 show this message")
	fmt.Fprintln(out, "  quit                 end the session")
}
