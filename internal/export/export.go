// Package export writes classified song tables as columnar CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
)

// Format is a supported output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Filename returns the default timestamped output filename for a format.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("categorized_music_%s.%s", now.Format("20060102_150405"), format)
}

// Write renders the table to w in the given format.
func Write(w io.Writer, table catalog.Table, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, table)
	case FormatJSON:
		return WriteJSON(w, table)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteCSV writes the table with a header row, one column per schema
// attribute.
func WriteCSV(w io.Writer, table catalog.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(catalog.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(catalog.Columns))
	for _, row := range table.Rows {
		for i, column := range catalog.Columns {
			record[i] = catalog.CellString(row, column)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the table as an indented array of records.
func WriteJSON(w io.Writer, table catalog.Table) error {
	rows := table.Rows
	if rows == nil {
		rows = []catalog.ClassifiedSong{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(rows)
}
