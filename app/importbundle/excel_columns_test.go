package importbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"lowercases", "IMEI", "imei"},
		{"collapses separators", "Serial_Number", "serial number"},
		{"mixed separators", "Wifi-Pass.word", "wifi pass word"},
		{"run of separators", "box  __ no", "box no"},
		{"trims", "  SSID  ", "ssid"},
		{"keeps slash", "S/N", "s/n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeader(tt.header))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("imei", "imei"))
	assert.Equal(t, 0.85, similarity("imei number", "imei"))
	assert.Equal(t, 0.85, similarity("mac", "mac address"))
	// "serial" vs "seriall": distance 1, max length 7
	assert.InDelta(t, 1.0-1.0/7.0, similarity("serial", "seriall"), 0.0001)
	assert.Equal(t, 0.0, similarity("", "imei"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"serial", "seriel", 1},
		{"số", "so", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein([]rune(tt.a), []rune(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}

func TestDetectColumnsKnownHeaders(t *testing.T) {
	matches := DetectColumns([]string{"S/N", "IMEI", "MAC", "SSID"})
	require.Len(t, matches, 4)

	assert.Equal(t, FieldSerialNumber, matches[0].SystemField)
	assert.Greater(t, matches[0].Confidence, 0.8)
	assert.Equal(t, FieldImei, matches[1].SystemField)
	assert.Equal(t, 1.0, matches[1].Confidence)
	assert.Equal(t, FieldMacAddress, matches[2].SystemField)
	assert.Equal(t, FieldSsid, matches[3].SystemField)
}

func TestDetectColumnsVariants(t *testing.T) {
	tests := []struct {
		header string
		want   SystemField
	}{
		{"Serial Number", FieldSerialNumber},
		{"serial_number", FieldSerialNumber},
		{"Seriennummer", FieldSerialNumber},
		{"IMEI Number", FieldImei},
		{"MAC Address", FieldMacAddress},
		{"Box No", FieldBoxNo},
		{"Box No Prefix", FieldBoxNoPrefix},
		{"Firmware Version", FieldFirmware},
		{"WiFi Password", FieldWifiPassword},
		{"Admin Password", FieldDevicePassword},
		{"RVM ID", FieldRvmId},
		{"DIM-DB Code", FieldDimDbId},
		{"Phone Number", FieldSimCardPhone},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			matches := DetectColumns([]string{tt.header})
			require.Len(t, matches, 1)
			assert.Equal(t, tt.want, matches[0].SystemField)
			assert.GreaterOrEqual(t, matches[0].Confidence, ColumnAcceptThreshold)
		})
	}
}

func TestDetectColumnsUnknownHeader(t *testing.T) {
	matches := DetectColumns([]string{"Lieferdatum"})
	require.Len(t, matches, 1)
	assert.Equal(t, SystemField(""), matches[0].SystemField)
	assert.Less(t, matches[0].Confidence, ColumnAcceptThreshold)
}

func TestDetectColumnsLocksFields(t *testing.T) {
	// the exact header takes the field, the weaker duplicate ends up unmapped
	matches := DetectColumns([]string{"IMEI", "IMEI Number"})
	require.Len(t, matches, 2)
	assert.Equal(t, FieldImei, matches[0].SystemField)
	assert.NotEqual(t, FieldImei, matches[1].SystemField)
}

func TestDetectColumnsSingleGreedyPass(t *testing.T) {
	// first come first served, even when a later header fits better
	matches := DetectColumns([]string{"IMEI Number", "IMEI"})
	require.Len(t, matches, 2)
	assert.Equal(t, FieldImei, matches[0].SystemField)
	assert.NotEqual(t, FieldImei, matches[1].SystemField)
}

func TestDetectColumnsEmpty(t *testing.T) {
	assert.Empty(t, DetectColumns(nil))
}

func TestSuggestFields(t *testing.T) {
	suggestions := SuggestFields("Passwort")
	require.NotEmpty(t, suggestions)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Confidence, suggestions[i].Confidence)
	}
	for _, suggestion := range suggestions {
		assert.Greater(t, suggestion.Confidence, ColumnSuggestThreshold)
	}
}

func TestSuggestFieldsExactHeader(t *testing.T) {
	suggestions := SuggestFields("IMEI")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, FieldImei, suggestions[0].SystemField)
	assert.Equal(t, 1.0, suggestions[0].Confidence)
}

func TestSuggestFieldsNoMatch(t *testing.T) {
	assert.Empty(t, SuggestFields("xq9"))
}
