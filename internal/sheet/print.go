package sheet

import (
	"io"

	"sheetcalc/internal/cellref"
)

// PrintMode selects what tabular printing emits for each cell.
type PrintMode uint8

const (
	// PrintText emits each cell's GetText.
	PrintText PrintMode = iota
	// PrintValues emits each cell's value in its canonical form.
	PrintValues
)

// Print writes the sheet's printable rectangle to out: one row per
// line, cells separated by a tab, absent cells rendered as empty.
func (s *Sheet) Print(out io.Writer, mode PrintMode) error {
	rows, cols := s.GetPrintableSize()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c != 0 {
				if _, err := io.WriteString(out, "\t"); err != nil {
					return err
				}
			}
			pos := cellref.New(int32(r), int32(c))
			cl, ok := s.cells[pos]
			if !ok {
				continue
			}
			var text string
			if mode == PrintText {
				text = cl.content.text()
			} else {
				text = cl.content.value(s).String()
			}
			if _, err := io.WriteString(out, text); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// PrintTexts writes GetText for every cell in the printable rectangle.
func (s *Sheet) PrintTexts(out io.Writer) error {
	return s.Print(out, PrintText)
}

// PrintValues writes each cell's canonical value for every cell in the
// printable rectangle.
func (s *Sheet) PrintValues(out io.Writer) error {
	return s.Print(out, PrintValues)
}
