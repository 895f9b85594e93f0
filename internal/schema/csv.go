package schema

import (
	"encoding/csv"
	"io"
	"strings"

	"SalesCast/internal/domain/models"
)

// DecodeCSV reads a header-first CSV document into a RawTable. Ragged rows
// are kept; the resolver drops them during coercion. Fails only when the
// document has no header row at all.
func DecodeCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, models.NewSchemaError("input is not parseable CSV").WithDetail("cause", err.Error())
	}

	table := &RawTable{Headers: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line, skip it like any other bad row.
			continue
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// DecodeCSVString decodes an uploaded CSV payload.
func DecodeCSVString(s string) (*RawTable, error) {
	return DecodeCSV(strings.NewReader(s))
}
