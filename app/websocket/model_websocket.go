package web3socket

import (
	"rvmtrack_backend/app/core"
)

const (
	Websocket_Router  = "ROUTER"
	Websocket_RvmUnit = "RVM_UNIT"
	Websocket_SimCard = "SIM_CARD"
	Websocket_DimDb   = "DIM_DB"
	Websocket_Import  = "IMPORT"
	Websocket_All     = "ALL"
)

const (
	Websocket_Update   = "UPDATE"
	Websocket_Add      = "ADD"
	Websocket_Delete   = "DELETE"
	Websocket_Progress = "PROGRESS"
)

// Define our message object
type WSHeaderMessage struct {
	UserId  uint             `json:"user_id"`
	Message WebsocketMessage `json:"message"`
}

type WebsocketMessage struct {
	MessageType string        `json:"message_type"`
	Timestamp   core.NullTime `json:"timestamp"`
	Status      int           `json:"status,omitempty"`
	Message     string        `json:"message,omitempty"`
	ForeignType string        `json:"foreign_type,omitempty"`
	ForeignId   uint          `json:"foreign_id,omitempty"`
	Action      string        `json:"action,omitempty"`
	Data        interface{}   `json:"data,omitempty"`
}

// ImportProgress is pushed to the importing user while a spreadsheet run is
// in flight. Percent never decreases within one run and only reaches 100
// when the run has finished.
type ImportProgress struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}
