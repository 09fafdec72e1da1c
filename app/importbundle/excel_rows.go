package importbundle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

// RawRow maps a spreadsheet column header to the cell text of one data row.
type RawRow map[string]string

// SheetData is one decoded worksheet: the header names, every non-empty
// data row and its 1-based spreadsheet row number.
type SheetData struct {
	Headers        []string
	Rows           []RawRow
	RowNumbers     []int
	HeaderRowIndex int
}

// minHeaderCells is the least number of non-empty cells the first row must
// have to count as the header row. Supplier sheets often carry a short
// title line above the real headers.
const minHeaderCells = 3

// DecodeSheet reads headers and data rows out of one worksheet. When the
// first row holds fewer than minHeaderCells values and more rows follow,
// the headers are taken from the second row instead. Duplicate header names
// get a positional suffix so every column stays addressable.
func DecodeSheet(sheet *xlsx.Sheet) (*SheetData, error) {
	if len(sheet.Rows) == 0 {
		return nil, errors.New("sheet contains no rows")
	}

	headerRowIndex := 0
	if len(sheet.Rows) > 1 && countExcelCells(sheet.Rows[0]) < minHeaderCells {
		headerRowIndex = 1
	}
	headerRow := sheet.Rows[headerRowIndex]
	if isEmptyExcelRow(headerRow) {
		return nil, errors.New("header row missing")
	}

	headers := make([]string, 0, len(headerRow.Cells))
	seen := map[string]bool{}
	for i, cell := range headerRow.Cells {
		name := strings.TrimSpace(cell.String())
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if seen[name] {
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		seen[name] = true
		headers = append(headers, name)
	}

	data := SheetData{Headers: headers, HeaderRowIndex: headerRowIndex}
	for rowNr, row := range sheet.Rows {
		if rowNr <= headerRowIndex || isEmptyExcelRow(row) {
			continue
		}
		raw := RawRow{}
		for i, header := range headers {
			if i < len(row.Cells) {
				raw[header] = row.Cells[i].String()
			}
		}
		data.Rows = append(data.Rows, raw)
		data.RowNumbers = append(data.RowNumbers, rowNr+1)
	}
	return &data, nil
}

func isEmptyExcelRow(r *xlsx.Row) bool {
	return countExcelCells(r) == 0
}

func countExcelCells(r *xlsx.Row) int {
	count := 0
	for _, cell := range r.Cells {
		if strings.TrimSpace(cell.Value) != "" {
			count++
		}
	}
	return count
}

// MapRowToRouter translates one raw row into canonical fields using the
// detected column matches. Cells that are empty after trimming leave their
// field unset, cleaning never produces an empty value for a present cell
// except when stripping removes every character.
func MapRowToRouter(raw RawRow, matches []ColumnMatch) ParsedRouterRow {
	row := ParsedRouterRow{}
	for _, match := range matches {
		if match.SystemField == "" || match.Confidence < ColumnAcceptThreshold {
			continue
		}
		value, ok := raw[match.ExcelColumn]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if cleaned := CleanFieldValue(match.SystemField, value); cleaned != "" {
			row.SetField(match.SystemField, cleaned)
		}
	}
	return row
}
