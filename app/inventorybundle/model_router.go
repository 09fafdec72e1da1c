package inventorybundle

import (
	"rvmtrack_backend/app/core"
)

const (
	RouterStatus_InStock   = "IN_STOCK"
	RouterStatus_Installed = "INSTALLED"
	RouterStatus_Retired   = "RETIRED"
)

const (
	SimCardStatus_Available = "AVAILABLE"
	SimCardStatus_Assigned  = "ASSIGNED"
	SimCardStatus_Blocked   = "BLOCKED"
)

const (
	DimDbStatus_Available = "AVAILABLE"
	DimDbStatus_Assigned  = "ASSIGNED"
)

// Router is one networking device. SerialNumber and Imei are both natural
// keys, either one identifies the device.
type Router struct {
	core.Model
	BoxNoPrefix    string `json:"box_no_prefix"`
	BoxNo          string `json:"box_no"`
	SerialNumber   string `json:"serial_number" gorm:"type:VARCHAR(50);unique_index"`
	Imei           string `json:"imei" gorm:"type:VARCHAR(20);unique_index"`
	MacAddress     string `json:"mac_address" gorm:"type:VARCHAR(20)"`
	Firmware       string `json:"firmware"`
	Ssid           string `json:"ssid"`
	WifiPassword   string `json:"wifi_password"`
	DevicePassword string `json:"device_password"`
	Status         string `json:"status" gorm:"type:VARCHAR(20)"`

	RvmUnitId uint     `json:"-"`
	RvmUnit   *RvmUnit `json:"rvm_unit,omitempty"`
	DimDbId   uint     `json:"-"`
	DimDb     *DimDb   `json:"dim_db,omitempty"`
	SimCardId uint     `json:"-"`
	SimCard   *SimCard `json:"sim_card,omitempty"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type Routers []Router

func (Router) TableName() string {
	return "routers"
}

// RvmUnit is the physical machine a router is installed in.
type RvmUnit struct {
	core.Model
	RvmId    string `json:"rvm_id" gorm:"type:VARCHAR(50);unique_index"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status" gorm:"type:VARCHAR(20)"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type RvmUnits []RvmUnit

func (RvmUnit) TableName() string {
	return "rvm_units"
}

// SimCard identified by its phone number (digits only).
type SimCard struct {
	core.Model
	PhoneNumber string `json:"phone_number" gorm:"type:VARCHAR(20);unique_index"`
	Provider    string `json:"provider"`
	Status      string `json:"status" gorm:"type:VARCHAR(20)"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type SimCards []SimCard

func (SimCard) TableName() string {
	return "sim_cards"
}

// DimDb is an externally issued database identifier code. Codes are handed
// out by administrators, never created by imports.
type DimDb struct {
	core.Model
	DimDbCode   string `json:"dim_db_code" gorm:"type:VARCHAR(50);unique_index"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"type:VARCHAR(20)"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type DimDbs []DimDb

func (DimDb) TableName() string {
	return "dim_dbs"
}

// ConsistencyReport summarizes one repair pass over the three pools.
type ConsistencyReport struct {
	ClearedRvmUnitRefs  int `json:"cleared_rvm_unit_refs"`
	ClearedSimCardRefs  int `json:"cleared_sim_card_refs"`
	ClearedDimDbRefs    int `json:"cleared_dim_db_refs"`
	SimCardsSetAssigned int `json:"sim_cards_set_assigned"`
	SimCardsSetFree     int `json:"sim_cards_set_free"`
	DimDbsSetAssigned   int `json:"dim_dbs_set_assigned"`
	DimDbsSetFree       int `json:"dim_dbs_set_free"`
}
