package importbundle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportErrorsFormatsField(t *testing.T) {
	reportErrors := buildReportErrors(
		[]ImportError{{Row: 4, Field: "imei", Message: "IMEI has 8 digits, expected 15"}},
		[]ImportError{{Row: 7, Field: "general", Message: "update failed: timeout"}},
	)

	require.Len(t, reportErrors, 2)
	assert.Equal(t, 4, reportErrors[0].Row)
	assert.Equal(t, "imei: IMEI has 8 digits, expected 15", reportErrors[0].Message)
	assert.Equal(t, "update failed: timeout", reportErrors[1].Message)
}

func TestBuildReportErrorsCapped(t *testing.T) {
	importErrors := []ImportError{}
	for i := 0; i < maxReportErrors+15; i++ {
		importErrors = append(importErrors, ImportError{Row: i + 2, Message: fmt.Sprintf("error %d", i)})
	}

	reportErrors := buildReportErrors(importErrors, nil)
	assert.Len(t, reportErrors, maxReportErrors)
}

func TestBuildReportWarningsCapped(t *testing.T) {
	warnings := []ImportWarning{}
	for i := 0; i < maxReportErrors+5; i++ {
		warnings = append(warnings, ImportWarning{Row: i + 2, Field: "macAddress", Message: "MAC address is not 12 hex digits"})
	}

	reportWarnings := buildReportWarnings(warnings, nil)
	require.Len(t, reportWarnings, maxReportErrors)
	assert.Equal(t, "macAddress: MAC address is not 12 hex digits", reportWarnings[0].Message)
}
