// Package export serializes tabular reports into downloadable spreadsheet and CSV files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"conferencehub/internal/domain"
)

const (
	// SheetName is the single worksheet every spreadsheet export contains.
	SheetName = "تقرير"
	// MaxColumnWidth caps auto-sized spreadsheet columns, in characters.
	MaxColumnWidth = 50

	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV   = "text/csv; charset=utf-8-sig"

	// TimeLayout is used for timestamp cells.
	TimeLayout = "2006-01-02 15:04:05"

	fileNameTimeLayout = "2006-01-02_15-04-05"
)

// utf8BOM lets spreadsheet applications detect UTF-8 in CSV downloads.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileName returns name suffixed with the export timestamp, without extension.
func FileName(name string, now time.Time) string {
	return name + "_" + now.Format(fileNameTimeLayout)
}

// Render serializes r in the requested format. The whole file is built in memory
// so a failure never leaves a partial download.
func Render(r *domain.Report, format domain.ExportFormat, now time.Time) (*domain.ExportFile, error) {
	base := FileName(r.Name, now)
	switch format {
	case domain.FormatExcel:
		body, err := Excel(r)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{FileName: base + ".xlsx", ContentType: ContentTypeExcel, Body: body}, nil
	case domain.FormatCSV:
		body, err := CSV(r)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{FileName: base + ".csv", ContentType: ContentTypeCSV, Body: body}, nil
	}
	return nil, domain.ErrInvalidFormat
}

// Excel writes r to a single-sheet workbook with auto-sized columns. Values only, no formulas or styles.
func Excel(r *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range r.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = excelValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, w := range columnWidths(r) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(w)); err != nil {
			return nil, fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CSV writes r as comma-separated UTF-8 with a leading byte order mark.
func CSV(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(r.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(r.Columns))
	for _, row := range r.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, CellString(v))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// CellString is the textual form of a cell, used for CSV output and width measurement.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(TimeLayout)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// excelValue keeps numbers numeric and renders everything else as text.
func excelValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case int, int64, float64:
		return v
	}
	return CellString(v)
}

// columnWidths returns, per column, the longest of the header and every
// stringified cell in runes, capped at MaxColumnWidth.
func columnWidths(r *domain.Report) []int {
	widths := make([]int, len(r.Columns))
	for i, c := range r.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range r.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(CellString(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, w := range widths {
		widths[i] = min(w, MaxColumnWidth)
	}
	return widths
}
