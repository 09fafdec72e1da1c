package importbundle

import (
	"rvmtrack_backend/app/core"
)

// SystemField is one canonical inventory field a spreadsheet column can be
// classified into. The set is closed, spreadsheet columns matching nothing
// are dropped.
type SystemField string

const (
	FieldBoxNoPrefix    SystemField = "boxNoPrefix"
	FieldBoxNo          SystemField = "boxNo"
	FieldSerialNumber   SystemField = "serialNumber"
	FieldImei           SystemField = "imei"
	FieldMacAddress     SystemField = "macAddress"
	FieldFirmware       SystemField = "firmware"
	FieldSsid           SystemField = "ssid"
	FieldWifiPassword   SystemField = "wifiPassword"
	FieldDevicePassword SystemField = "devicePassword"
	FieldRvmId          SystemField = "rvmId"
	FieldDimDbId        SystemField = "dimDbId"
	FieldSimCardPhone   SystemField = "simCardPhone"
)

// ColumnMatch maps one spreadsheet column header to a canonical field.
// SystemField is empty when no pattern cleared the acceptance threshold,
// Confidence carries the best score regardless.
type ColumnMatch struct {
	ExcelColumn string      `json:"excel_column"`
	SystemField SystemField `json:"system_field,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// FieldSuggestion is one candidate field for a manually mapped column.
type FieldSuggestion struct {
	SystemField SystemField `json:"system_field"`
	Confidence  float64     `json:"confidence"`
}

// ParsedRouterRow is one spreadsheet row translated to canonical fields.
// Values are cleaned, an empty string means the column was absent or empty,
// fields are never set to "".
type ParsedRouterRow struct {
	BoxNoPrefix    string `json:"box_no_prefix,omitempty"`
	BoxNo          string `json:"box_no,omitempty"`
	SerialNumber   string `json:"serial_number,omitempty"`
	Imei           string `json:"imei,omitempty"`
	MacAddress     string `json:"mac_address,omitempty"`
	Firmware       string `json:"firmware,omitempty"`
	Ssid           string `json:"ssid,omitempty"`
	WifiPassword   string `json:"wifi_password,omitempty"`
	DevicePassword string `json:"device_password,omitempty"`
	RvmId          string `json:"rvm_id,omitempty"`
	DimDbId        string `json:"dim_db_id,omitempty"`
	SimCardPhone   string `json:"sim_card_phone,omitempty"`
}

func (p *ParsedRouterRow) SetField(field SystemField, value string) {
	switch field {
	case FieldBoxNoPrefix:
		p.BoxNoPrefix = value
	case FieldBoxNo:
		p.BoxNo = value
	case FieldSerialNumber:
		p.SerialNumber = value
	case FieldImei:
		p.Imei = value
	case FieldMacAddress:
		p.MacAddress = value
	case FieldFirmware:
		p.Firmware = value
	case FieldSsid:
		p.Ssid = value
	case FieldWifiPassword:
		p.WifiPassword = value
	case FieldDevicePassword:
		p.DevicePassword = value
	case FieldRvmId:
		p.RvmId = value
	case FieldDimDbId:
		p.DimDbId = value
	case FieldSimCardPhone:
		p.SimCardPhone = value
	}
}

func (p ParsedRouterRow) FieldValue(field SystemField) string {
	switch field {
	case FieldBoxNoPrefix:
		return p.BoxNoPrefix
	case FieldBoxNo:
		return p.BoxNo
	case FieldSerialNumber:
		return p.SerialNumber
	case FieldImei:
		return p.Imei
	case FieldMacAddress:
		return p.MacAddress
	case FieldFirmware:
		return p.Firmware
	case FieldSsid:
		return p.Ssid
	case FieldWifiPassword:
		return p.WifiPassword
	case FieldDevicePassword:
		return p.DevicePassword
	case FieldRvmId:
		return p.RvmId
	case FieldDimDbId:
		return p.DimDbId
	case FieldSimCardPhone:
		return p.SimCardPhone
	}
	return ""
}

func (p ParsedRouterRow) IsEmpty() bool {
	return p == ParsedRouterRow{}
}

// ImportError blocks the row it belongs to. Field names the offending
// column ("imei", "serialNumber/imei" or "general").
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportWarning is surfaced for operator awareness, the row is still
// persisted with the cleaned value as-is.
type ImportWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// RowValidation is the outcome of validating one parsed row.
type RowValidation struct {
	IsValid     bool            `json:"is_valid"`
	Errors      []ImportError   `json:"errors"`
	Warnings    []ImportWarning `json:"warnings"`
	CleanedData ParsedRouterRow `json:"cleaned_data"`
}

// maxReportErrors bounds the error and warning lists in the transport
// report, overflow is dropped silently.
const maxReportErrors = 20

type ImportReportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport is the run-level result handed back to the caller. Success
// means zero row errors, a partial run still answers HTTP 200 with the
// error list populated.
type ImportReport struct {
	Success         bool                `json:"success"`
	TotalRows       int                 `json:"total_rows"`
	NewCount        int                 `json:"new_count"`
	UpdatedCount    int                 `json:"updated_count"`
	ErrorCount      int                 `json:"error_count"`
	SkippedCount    int                 `json:"skipped_count"`
	Errors          []ImportReportError `json:"errors"`
	Warnings        []ImportReportError `json:"warnings,omitempty"`
	CreatedRvmUnits []string            `json:"created_rvm_units"`
	CreatedSimCards []string            `json:"created_sim_cards"`
	ColumnMappings  []ColumnMatch       `json:"column_mappings"`
	HeaderRowIndex  int                 `json:"header_row_index"`
}

// ProgressFunc receives progress ticks during a run. Percent never
// decreases and reaches 100 only on completion.
type ProgressFunc func(percent int, message string)

// ImportLog is the audit record of one import run.
type ImportLog struct {
	core.Model
	UserId       uint      `json:"-"`
	User         core.User `json:"user"`
	FileName     string    `json:"file_name"`
	TotalRows    int       `json:"total_rows"`
	NewCount     int       `json:"new_count"`
	UpdatedCount int       `json:"updated_count"`
	ErrorCount   int       `json:"error_count"`
	Success      bool      `json:"success"`
}

type ImportLogs []ImportLog

func (ImportLog) TableName() string {
	return "import_logs"
}
