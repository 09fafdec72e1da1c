package importbundle

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// ColumnAcceptThreshold is the minimum weighted score at which a header
	// is mapped to a field at all.
	ColumnAcceptThreshold = 0.5
	// ColumnLockThreshold locks a field against later headers in the same
	// sheet once a match at or above it was recorded.
	ColumnLockThreshold = 0.7
	// ColumnSuggestThreshold is the lower bound for manual mapping
	// suggestions.
	ColumnSuggestThreshold = 0.3
)

// fieldPattern holds the recognition data for one canonical field. Weight
// scales the raw similarity, fields with generic alias vocabulary carry a
// lower weight so they lose ties against specific ones.
type fieldPattern struct {
	Field   SystemField
	Weight  float64
	Aliases []string
}

// Alias lists mix English, German and Vietnamese header vocabulary seen in
// supplier sheets. Aliases are compared in normalized form.
var fieldPatterns = []fieldPattern{
	{FieldSerialNumber, 1.0, []string{
		"serial number", "serialnumber", "serial", "serial no", "serial nr",
		"s/n", "sn", "seriennummer", "so seri", "số seri", "seri",
	}},
	{FieldImei, 1.0, []string{
		"imei", "imei number", "imei no", "imei code", "so imei", "số imei",
	}},
	{FieldMacAddress, 0.95, []string{
		"mac address", "mac", "mac addr", "mac adresse", "wifi mac",
		"dia chi mac", "địa chỉ mac",
	}},
	{FieldBoxNoPrefix, 0.95, []string{
		"box no prefix", "box number prefix", "box prefix", "carton prefix",
	}},
	{FieldBoxNo, 0.9, []string{
		"box no", "box number", "box nr", "box", "carton no", "karton nr",
		"so thung", "số thùng",
	}},
	{FieldFirmware, 0.85, []string{
		"firmware", "firmware version", "fw version", "fw", "software version",
		"phien ban firmware",
	}},
	{FieldSsid, 0.9, []string{
		"ssid", "wifi ssid", "wifi name", "network name", "wlan name",
		"ten wifi", "tên wifi",
	}},
	{FieldWifiPassword, 0.9, []string{
		"wifi password", "wifi pass", "wifi pw", "wlan password",
		"wlan passwort", "password wifi", "mat khau wifi", "mật khẩu wifi",
	}},
	{FieldDevicePassword, 0.85, []string{
		"device password", "admin password", "router password",
		"login password", "geraete passwort", "mat khau thiet bi",
		"mật khẩu thiết bị",
	}},
	{FieldRvmId, 0.95, []string{
		"rvm id", "rvm", "rvm code", "rvm no", "machine id", "machine code",
		"automaten id", "ma may", "mã máy",
	}},
	{FieldDimDbId, 0.9, []string{
		"dim db", "dim db id", "dim db code", "dimdb", "db code",
		"ma dim db", "mã dim db",
	}},
	{FieldSimCardPhone, 0.9, []string{
		"sim phone", "sim card phone", "phone number", "phone", "phone no",
		"sim number", "sim", "msisdn", "rufnummer", "so dien thoai",
		"số điện thoại", "sdt",
	}},
}

var headerSeparators = regexp.MustCompile(`[\s_\-.]+`)

// normalizeHeader lowercases a header and collapses whitespace, underscores,
// hyphens and dots into single spaces.
func normalizeHeader(header string) string {
	header = strings.ToLower(header)
	header = headerSeparators.ReplaceAllString(header, " ")
	return strings.TrimSpace(header)
}

// similarity rates two normalized strings in [0,1]: 1.0 for equality, 0.85
// when one contains the other, otherwise a Levenshtein ratio.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.85
	}
	runesA := []rune(a)
	runesB := []rune(b)
	maxLen := len(runesA)
	if len(runesB) > maxLen {
		maxLen = len(runesB)
	}
	return 1.0 - float64(levenshtein(runesA, runesB))/float64(maxLen)
}

// levenshtein computes the edit distance between two rune slices.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// scoreField rates a normalized header against one field pattern, taking
// the best alias and scaling by the field weight.
func scoreField(normalized string, pattern fieldPattern) float64 {
	best := 0.0
	for _, alias := range pattern.Aliases {
		if score := similarity(normalized, alias); score > best {
			best = score
		}
	}
	return best * pattern.Weight
}

// DetectColumns classifies spreadsheet headers into canonical fields in a
// single pass. Each header takes the best-scoring free field, matches at or
// above ColumnLockThreshold lock the field for later headers. Headers that
// match nothing keep an empty SystemField and carry their best score for
// diagnostics.
func DetectColumns(headers []string) []ColumnMatch {
	matches := make([]ColumnMatch, 0, len(headers))
	usedFields := map[SystemField]bool{}
	for _, header := range headers {
		normalized := normalizeHeader(header)
		match := ColumnMatch{ExcelColumn: header}
		for _, pattern := range fieldPatterns {
			if usedFields[pattern.Field] {
				continue
			}
			if score := scoreField(normalized, pattern); score > match.Confidence {
				match.Confidence = score
				match.SystemField = pattern.Field
			}
		}
		if match.Confidence < ColumnAcceptThreshold {
			match.SystemField = ""
		} else if match.Confidence >= ColumnLockThreshold {
			usedFields[match.SystemField] = true
		}
		matches = append(matches, match)
	}
	return matches
}

// SuggestFields rates one ad-hoc header against every canonical field and
// returns the candidates above ColumnSuggestThreshold, best first.
func SuggestFields(header string) []FieldSuggestion {
	normalized := normalizeHeader(header)
	suggestions := []FieldSuggestion{}
	for _, pattern := range fieldPatterns {
		if score := scoreField(normalized, pattern); score > ColumnSuggestThreshold {
			suggestions = append(suggestions, FieldSuggestion{SystemField: pattern.Field, Confidence: score})
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}
