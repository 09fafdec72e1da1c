package importbundle

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	serialNumberLength = 10
	imeiLength         = 15
	macAddressLength   = 12
)

var macReplacer = strings.NewReplacer(":", "", "-", "", " ", "")

// CleanFieldValue normalizes one raw cell value for its target field.
// Cleaning is idempotent, running it twice yields the same result.
func CleanFieldValue(field SystemField, raw string) string {
	switch field {
	case FieldSerialNumber, FieldImei:
		return digitsOnly(raw)
	case FieldMacAddress:
		return strings.ToUpper(macReplacer.Replace(strings.TrimSpace(raw)))
	case FieldRvmId:
		return strings.ToUpper(strings.TrimSpace(raw))
	case FieldSimCardPhone:
		return stripWhitespace(raw)
	default:
		return strings.TrimSpace(raw)
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isHexString(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

// ValidateRouterRow cleans every present field of a parsed row and checks
// the result. A malformed IMEI and a row identifying neither serial number
// nor IMEI block the row, everything else is a warning and the row is kept.
func ValidateRouterRow(row ParsedRouterRow, rowNr int) RowValidation {
	result := RowValidation{Errors: []ImportError{}, Warnings: []ImportWarning{}}
	for _, pattern := range fieldPatterns {
		if value := row.FieldValue(pattern.Field); value != "" {
			row.SetField(pattern.Field, CleanFieldValue(pattern.Field, value))
		}
	}
	result.CleanedData = row

	if row.SerialNumber != "" && len(row.SerialNumber) != serialNumberLength {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row:     rowNr,
			Field:   string(FieldSerialNumber),
			Message: fmt.Sprintf("serial number has %d digits, expected %d", len(row.SerialNumber), serialNumberLength),
			Value:   row.SerialNumber,
		})
	}
	if row.Imei != "" && len(row.Imei) != imeiLength {
		result.Errors = append(result.Errors, ImportError{
			Row:     rowNr,
			Field:   string(FieldImei),
			Message: fmt.Sprintf("IMEI has %d digits, expected %d", len(row.Imei), imeiLength),
			Value:   row.Imei,
		})
	}
	if row.MacAddress != "" && (len(row.MacAddress) != macAddressLength || !isHexString(row.MacAddress)) {
		result.Warnings = append(result.Warnings, ImportWarning{
			Row:     rowNr,
			Field:   string(FieldMacAddress),
			Message: "MAC address is not 12 hex digits",
			Value:   row.MacAddress,
		})
	}
	if row.SerialNumber == "" && row.Imei == "" {
		result.Errors = append(result.Errors, ImportError{
			Row:     rowNr,
			Field:   "serialNumber/imei",
			Message: "row identifies no device, serial number or IMEI required",
		})
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// IsValidImeiChecksum runs the Luhn check over a 15 digit IMEI: every second
// digit from the left is doubled, doubles above 9 lose 9, the sum must be
// divisible by 10. Checksum failures are advisory only, supplier sheets
// contain test IMEIs that fail it.
func IsValidImeiChecksum(imei string) bool {
	if len(imei) != imeiLength {
		return false
	}
	sum := 0
	for i, r := range imei {
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return sum%10 == 0
}
