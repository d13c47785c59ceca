package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformedTable is returned when an input table cannot be parsed
var ErrMalformedTable = errors.New("malformed table")

// readTable opens a delimited file, skips its header row and calls fn with
// every data row. Rows shorter than minFields are rejected.
func readTable(path string, delimiter rune, minFields int, fn func(record []string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	// quotes are only special at the start of a field; method headers carry
	// annotation literals such as @SuppressWarnings("x")
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: %s has no header row", ErrMalformedTable, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrMalformedTable, path, err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedTable, path, err)
		}
		if len(record) < minFields {
			line, _ := reader.FieldPos(0)
			return fmt.Errorf("%w: %s line %d: expected %d fields, got %d",
				ErrMalformedTable, path, line, minFields, len(record))
		}
		fn(record)
	}
}
