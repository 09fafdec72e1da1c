package importbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func buildSheet(t *testing.T, rows [][]string) *xlsx.Sheet {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, value := range cells {
			row.AddCell().SetString(value)
		}
	}
	return sheet
}

func TestDecodeSheet(t *testing.T) {
	sheet := buildSheet(t, [][]string{
		{"Serial Number", "IMEI", "Box No"},
		{"0171303533", "868291076903737", "B-1"},
		{"0171303534", "868291076903738", "B-2"},
	})

	data, err := DecodeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, data.HeaderRowIndex)
	assert.Equal(t, []string{"Serial Number", "IMEI", "Box No"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []int{2, 3}, data.RowNumbers)
	assert.Equal(t, "868291076903737", data.Rows[0]["IMEI"])
	assert.Equal(t, "B-2", data.Rows[1]["Box No"])
}

func TestDecodeSheetTitleRow(t *testing.T) {
	sheet := buildSheet(t, [][]string{
		{"Delivery June 2026"},
		{"Serial Number", "IMEI", "Box No"},
		{"0171303533", "868291076903737", "B-1"},
	})

	data, err := DecodeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, data.HeaderRowIndex)
	assert.Equal(t, []string{"Serial Number", "IMEI", "Box No"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []int{3}, data.RowNumbers)
}

func TestDecodeSheetWideFirstRowIsHeader(t *testing.T) {
	// three or more filled cells in the first row keep it as the header
	sheet := buildSheet(t, [][]string{
		{"Serial Number", "IMEI", "Box No"},
		{"0171303533", "868291076903737", "B-1"},
	})

	data, err := DecodeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, data.HeaderRowIndex)
}

func TestDecodeSheetSkipsEmptyRows(t *testing.T) {
	sheet := buildSheet(t, [][]string{
		{"Serial Number", "IMEI", "Box No"},
		{"0171303533", "868291076903737", "B-1"},
		{"", "", ""},
		{"0171303534", "868291076903738", "B-2"},
	})

	data, err := DecodeSheet(sheet)
	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []int{2, 4}, data.RowNumbers)
}

func TestDecodeSheetDuplicateHeaders(t *testing.T) {
	sheet := buildSheet(t, [][]string{
		{"IMEI", "IMEI", "Box No"},
		{"868291076903737", "868291076903738", "B-1"},
	})

	data, err := DecodeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"IMEI", "IMEI_2", "Box No"}, data.Headers)
	assert.Equal(t, "868291076903737", data.Rows[0]["IMEI"])
	assert.Equal(t, "868291076903738", data.Rows[0]["IMEI_2"])
}

func TestDecodeSheetUnnamedColumns(t *testing.T) {
	sheet := buildSheet(t, [][]string{
		{"IMEI", "", "Box No", "SSID"},
		{"868291076903737", "x", "B-1", "RVM-Wifi"},
	})

	data, err := DecodeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"IMEI", "Column 2", "Box No", "SSID"}, data.Headers)
}

func TestDecodeSheetEmpty(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	require.NoError(t, err)

	_, err = DecodeSheet(sheet)
	assert.Error(t, err)
}

func TestMapRowToRouter(t *testing.T) {
	matches := []ColumnMatch{
		{ExcelColumn: "Serial Number", SystemField: FieldSerialNumber, Confidence: 1.0},
		{ExcelColumn: "IMEI", SystemField: FieldImei, Confidence: 1.0},
		{ExcelColumn: "MAC", SystemField: FieldMacAddress, Confidence: 0.95},
		{ExcelColumn: "Lieferdatum", SystemField: "", Confidence: 0.2},
	}
	raw := RawRow{
		"Serial Number": "017-1303-533",
		"IMEI":          "868-291-076-903-737",
		"MAC":           "20:97:27:80:a7:e8",
		"Lieferdatum":   "2026-06-01",
	}

	row := MapRowToRouter(raw, matches)
	assert.Equal(t, "0171303533", row.SerialNumber)
	assert.Equal(t, "868291076903737", row.Imei)
	assert.Equal(t, "20972780A7E8", row.MacAddress)
	assert.Empty(t, row.BoxNo)
}

func TestMapRowToRouterSkipsEmptyCells(t *testing.T) {
	matches := []ColumnMatch{
		{ExcelColumn: "Serial Number", SystemField: FieldSerialNumber, Confidence: 1.0},
		{ExcelColumn: "IMEI", SystemField: FieldImei, Confidence: 1.0},
	}
	raw := RawRow{"Serial Number": "   ", "IMEI": "868291076903737"}

	row := MapRowToRouter(raw, matches)
	assert.Empty(t, row.SerialNumber)
	assert.Equal(t, "868291076903737", row.Imei)
	assert.False(t, row.IsEmpty())
}
