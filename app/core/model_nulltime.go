package core

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type NullTime struct {
	Time  time.Time
	Valid bool // Valid is true if Time is not NULL
}

func Now() NullTime {
	return NullTime{Time: time.Now(), Valid: true}
}

var nullTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
}

func (u *NullTime) FromString(s string) {
	for _, layout := range nullTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u.Time = t
			u.Valid = true
			return
		}
	}
	u.Valid = false
}

// Scan implements the Scanner interface.
func (u *NullTime) Scan(value interface{}) error {
	if value == nil {
		u.Time, u.Valid = time.Time{}, false
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		u.Time, u.Valid = v, true
	case []byte:
		u.FromString(string(v))
	case string:
		u.FromString(v)
	default:
		u.Valid = false
	}
	return nil
}

// Value implements the driver Valuer interface.
func (u NullTime) Value() (driver.Value, error) {
	if !u.Valid {
		return nil, nil
	}
	return u.Time, nil
}

func (u NullTime) MarshalJSON() ([]byte, error) {
	if !u.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(u.Time)
}

func (u *NullTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		u.Valid = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	u.FromString(s)
	return nil
}
