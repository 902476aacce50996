package table

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadFile reads a delimited file into a Table. The delimiter is chosen from
// the file extension: .csv is comma-separated, everything else is treated as
// tab-separated. Gzipped input (.gz) is detected from the magic bytes.
// Empty cells become null.
func ReadFile(path string) (*Table, error) {
	if path == "-" {
		return ReadTSV(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file

	// Check for gzip magic number (0x1f, 0x8b)
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seek table file: %w", err)
	}
	if buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	lowerPath := strings.ToLower(path)
	lowerPath = strings.TrimSuffix(lowerPath, ".gz")
	if strings.HasSuffix(lowerPath, ".csv") {
		return ReadCSV(r)
	}
	return ReadTSV(r)
}

// ReadTSV reads tab-separated rows from r. The first non-empty,
// non-comment line is the header. Comment lines start with '#'.
func ReadTSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	var (
		t          *Table
		lineNumber int
	)

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read line: %w", err)
		}
		done := err == io.EOF
		lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line != "" && !strings.HasPrefix(line, "#") {
			fields := strings.Split(line, "\t")
			if t == nil {
				t, err = New(fields...)
				if err != nil {
					return nil, &ParseError{Line: lineNumber, Message: err.Error()}
				}
			} else {
				if len(fields) != t.NumColumns() {
					return nil, &ParseError{
						Line:    lineNumber,
						Message: fmt.Sprintf("expected %d columns, found %d", t.NumColumns(), len(fields)),
					}
				}
				t.rows = append(t.rows, cellsFromStrings(fields))
			}
		}

		if done {
			break
		}
	}

	if t == nil {
		return nil, &ParseError{Line: lineNumber, Message: "no header line found"}
	}
	return t, nil
}

// ReadCSV reads comma-separated rows from r, honoring quoting.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &ParseError{Line: 0, Message: "no header line found"}
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t, err := New(header...)
	if err != nil {
		return nil, &ParseError{Line: 1, Message: err.Error()}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		t.rows = append(t.rows, cellsFromStrings(record))
	}
	return t, nil
}

func cellsFromStrings(fields []string) []Cell {
	cells := make([]Cell, len(fields))
	for i, f := range fields {
		if f == "" {
			cells[i] = Null
		} else {
			cells[i] = String(f)
		}
	}
	return cells
}

// ParseError represents an error during table parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("table parse error at line %d: %s", e.Line, e.Message)
}
