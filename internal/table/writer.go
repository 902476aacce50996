package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// NullMarker is written in place of null cells.
const NullMarker = "-"

// WriteFile writes the table to path. The delimiter follows the file
// extension, matching ReadFile.
func WriteFile(t *Table, path string) error {
	if path == "" || path == "-" {
		return WriteTSV(t, os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return WriteCSV(t, f)
	}
	return WriteTSV(t, f)
}

// WriteTSV writes the table as tab-separated rows with a header line.
// Null cells are written as NullMarker.
func WriteTSV(t *Table, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.columns, "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range t.rows {
		if _, err := bw.WriteString(strings.Join(rowStrings(r), "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCSV writes the table as comma-separated rows with a header line.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	for _, r := range t.rows {
		if err := cw.Write(rowStrings(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rowStrings(r []Cell) []string {
	fields := make([]string, len(r))
	for i, c := range r {
		if c.Null {
			fields[i] = NullMarker
		} else {
			fields[i] = c.Value
		}
	}
	return fields
}
