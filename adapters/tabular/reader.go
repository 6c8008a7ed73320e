package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"chartadvisor/domain/dataset"
	"chartadvisor/internal"
	"chartadvisor/ports"
)

// Reader parses Excel and CSV files into a materialized table. File-type
// detection is by extension; everything else about the upstream upload
// (size limits, mime validation) is the caller's concern.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *internal.Logger
}

var _ ports.DatasetReader = (*Reader)(nil)

// NewReader creates a reader for an Excel or CSV file
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType, log: internal.DefaultLogger}
}

// Read parses the file into a table with the file's own column order.
func (r *Reader) Read() (dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return dataset.Table{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return dataset.Table{}, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *Reader) readExcel() (dataset.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.Table{}, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	r.log.Debug("[Tabular] read %d raw rows from sheet %q", len(rows), sheets[0])

	return buildTable(rows)
}

func (r *Reader) readCSV() (dataset.Table, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, short rows become nulls
	rows, err := reader.ReadAll()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	r.log.Debug("[Tabular] read %d raw rows from CSV", len(rows))

	return buildTable(rows)
}

// buildTable turns a header row plus data rows into records. Blank cells
// are omitted from the record, which the profiler treats as nulls.
func buildTable(raw [][]string) (dataset.Table, error) {
	if len(raw) < 2 {
		return dataset.Table{}, fmt.Errorf("file must have a header row and at least one data row")
	}

	header := make([]string, 0, len(raw[0]))
	for i, name := range raw[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		header = append(header, name)
	}

	records := make([]dataset.Record, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		rec := make(dataset.Record, len(header))
		for i, name := range header {
			if i >= len(cells) {
				continue
			}
			cell := strings.TrimSpace(cells[i])
			if cell == "" {
				continue
			}
			rec[name] = cell
		}
		records = append(records, rec)
	}

	return dataset.Table{Columns: header, Rows: records}, nil
}
