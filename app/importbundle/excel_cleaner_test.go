package importbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFieldValue(t *testing.T) {
	tests := []struct {
		name  string
		field SystemField
		raw   string
		want  string
	}{
		{"serial strips non digits", FieldSerialNumber, "SN: 017-1303-533", "0171303533"},
		{"imei strips dashes", FieldImei, "868-291-076-903-737", "868291076903737"},
		{"imei strips spaces", FieldImei, " 868291 076903737 ", "868291076903737"},
		{"mac strips colons and uppercases", FieldMacAddress, "20:97:27:80:a7:e8", "20972780A7E8"},
		{"mac strips dashes", FieldMacAddress, "20-97-27-80-a7-e8", "20972780A7E8"},
		{"rvm id uppercased", FieldRvmId, " kpl0402511010 ", "KPL0402511010"},
		{"phone strips whitespace", FieldSimCardPhone, " +49 170 123 4567 ", "+491701234567"},
		{"box no trimmed", FieldBoxNo, "  B-1024  ", "B-1024"},
		{"firmware trimmed", FieldFirmware, " v2.1.7 ", "v2.1.7"},
		{"ssid keeps case", FieldSsid, "RVM-Wifi ", "RVM-Wifi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanFieldValue(tt.field, tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, CleanFieldValue(tt.field, got), "cleaning must be idempotent")
		})
	}
}

func TestValidateRouterRowValid(t *testing.T) {
	row := ParsedRouterRow{
		SerialNumber: "0171303533",
		Imei:         "868291076903737",
		MacAddress:   "20972780A7E8",
	}
	validation := ValidateRouterRow(row, 3)
	assert.True(t, validation.IsValid)
	assert.Empty(t, validation.Errors)
	assert.Empty(t, validation.Warnings)
	assert.Equal(t, row, validation.CleanedData)
}

func TestValidateRouterRowCleansFields(t *testing.T) {
	row := ParsedRouterRow{
		Imei:       "868-291-076-903-737",
		MacAddress: "20:97:27:80:a7:e8",
		RvmId:      "kpl0402511010",
	}
	validation := ValidateRouterRow(row, 5)
	require.True(t, validation.IsValid)
	assert.Equal(t, "868291076903737", validation.CleanedData.Imei)
	assert.Equal(t, "20972780A7E8", validation.CleanedData.MacAddress)
	assert.Equal(t, "KPL0402511010", validation.CleanedData.RvmId)
}

func TestValidateRouterRowSerialLengthWarning(t *testing.T) {
	row := ParsedRouterRow{SerialNumber: "12345"}
	validation := ValidateRouterRow(row, 2)
	assert.True(t, validation.IsValid, "short serial warns but does not block")
	require.Len(t, validation.Warnings, 1)
	assert.Equal(t, "serialNumber", validation.Warnings[0].Field)
	assert.Equal(t, 2, validation.Warnings[0].Row)
}

func TestValidateRouterRowImeiLengthError(t *testing.T) {
	row := ParsedRouterRow{SerialNumber: "0171303533", Imei: "12345678"}
	validation := ValidateRouterRow(row, 7)
	assert.False(t, validation.IsValid)
	require.Len(t, validation.Errors, 1)
	assert.Equal(t, "imei", validation.Errors[0].Field)
	assert.Equal(t, "12345678", validation.Errors[0].Value)
}

func TestValidateRouterRowMacWarning(t *testing.T) {
	tests := []struct {
		name string
		mac  string
	}{
		{"too short", "20972780A7"},
		{"not hex", "20972780A7GZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ParsedRouterRow{SerialNumber: "0171303533", MacAddress: tt.mac}
			validation := ValidateRouterRow(row, 1)
			assert.True(t, validation.IsValid)
			require.Len(t, validation.Warnings, 1)
			assert.Equal(t, "macAddress", validation.Warnings[0].Field)
		})
	}
}

func TestValidateRouterRowNeedsIdentity(t *testing.T) {
	row := ParsedRouterRow{BoxNo: "B-1024", Ssid: "RVM-Wifi"}
	validation := ValidateRouterRow(row, 9)
	assert.False(t, validation.IsValid)
	require.Len(t, validation.Errors, 1)
	assert.Equal(t, "serialNumber/imei", validation.Errors[0].Field)
}

func TestValidateRouterRowImeiOnlyIsValid(t *testing.T) {
	row := ParsedRouterRow{Imei: "868291076903737"}
	validation := ValidateRouterRow(row, 4)
	assert.True(t, validation.IsValid)
}

func TestIsValidImeiChecksum(t *testing.T) {
	tests := []struct {
		name string
		imei string
		want bool
	}{
		{"valid checksum", "490154203237518", true},
		{"wrong check digit", "490154203237519", false},
		{"too short", "49015420323751", false},
		{"non digit", "49015420323751A", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidImeiChecksum(tt.imei))
		})
	}
}
