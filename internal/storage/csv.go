package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"dbc/internal/domain"
)

// WriteDataset writes the header row and records to path. The file is
// written next to path and renamed into place once complete.
func WriteDataset(path string, records []domain.OutputRecord) (err error) {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmp)
		}
	}()

	if err = EncodeDataset(file, records); err != nil {
		return err
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("close dataset: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename dataset: %w", err)
	}
	return nil
}

// EncodeDataset writes the header row and records as comma separated values,
// one CRLF terminated line per record
func EncodeDataset(w io.Writer, records []domain.OutputRecord) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(domain.OutputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// ReadDataset loads a dataset file written by WriteDataset
func ReadDataset(path string) ([]domain.OutputRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(domain.OutputHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read dataset %s: missing header row", path)
	}

	records := make([]domain.OutputRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.OutputRecord{
			TestID:             row[0],
			MethodID:           row[1],
			MethodRole:         row[2],
			Modifiers:          row[3],
			Header:             row[4],
			FullyQualifiedName: row[5],
			StartLine:          row[6],
			EndLine:            row[7],
		})
	}
	return records, nil
}
