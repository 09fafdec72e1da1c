package web3socket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"rvmtrack_backend/app/core"
)

type RegisteredMessageType struct {
	MessageType string `json:"message_type"`
	SpecifiedId uint   `json:"specified_id"`
}

type RegisteredMessageTypes []RegisteredMessageType

var WebsocketUsers = make(map[uint]map[*websocket.Conn]RegisteredMessageTypes)

var Broadcast = make(chan WSHeaderMessage)   // broadcast channel
var UserChannel = make(chan WSHeaderMessage) // user channel

// Configure the upgrader
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func HandleBroadcastMessages() {
	for {
		msg := <-Broadcast
		// Send it out to every client that is currently connected
		for userId, usersWebsockets := range WebsocketUsers {
			if msg.UserId == 0 || msg.UserId == userId {
				for client, areas := range usersWebsockets {
					needsToSend := false
					for _, area := range areas {
						if (area.MessageType == msg.Message.MessageType || area.MessageType == Websocket_All) && (area.SpecifiedId == 0 || area.SpecifiedId == msg.Message.ForeignId) {
							needsToSend = true
							break
						}
					}
					if needsToSend {
						err := client.WriteJSON(&msg.Message)
						if err != nil {
							log.Printf("error: %v", err)
							client.Close()
							delete(usersWebsockets, client)
						}
					}
				}
			}
		}
	}
}

func HandleUserMessages() {
	for {
		msg := <-UserChannel
		for client := range WebsocketUsers[msg.UserId] {
			err := client.WriteJSON(msg.Message)
			if err != nil {
				log.Printf("error: %v", err)
				client.Close()
				delete(WebsocketUsers[msg.UserId], client)
			}
		}
	}
}

func SendBroadCastWebsocketDataInfoMessage(message string, action string, foreignType string, foreignId uint, data interface{}) {
	var wsMsg WebsocketMessage = WebsocketMessage{
		MessageType: "DATA",
		Timestamp:   core.NullTime{Time: time.Now(), Valid: true},
		Message:     message,
		ForeignType: foreignType,
		ForeignId:   foreignId,
		Action:      action,
		Data:        data,
	}
	headerMsg := WSHeaderMessage{UserId: 0, Message: wsMsg}
	Broadcast <- headerMsg
}

func SendWebsocketDataInfoMessage(message string, action string, foreignType string, foreignId uint, userIds []uint, data interface{}) {
	if len(userIds) == 0 {
		return
	}
	for _, userId := range userIds {
		if userId > 0 {
			var wsMsg WebsocketMessage = WebsocketMessage{
				MessageType: "DATA",
				Timestamp:   core.NullTime{Time: time.Now(), Valid: true},
				Message:     message,
				ForeignType: foreignType,
				ForeignId:   foreignId,
				Action:      action,
				Data:        data,
			}
			headerMsg := WSHeaderMessage{UserId: userId, Message: wsMsg}
			Broadcast <- headerMsg
		}
	}
}

// SendImportProgress pushes one progress tick of a running spreadsheet
// import to the user who started it. Delivery is fire and forget, a
// disconnected operator simply misses the tick.
func SendImportProgress(userId uint, percent int, message string) {
	if userId == 0 {
		return
	}
	var wsMsg WebsocketMessage = WebsocketMessage{
		MessageType: Websocket_Import,
		Timestamp:   core.NullTime{Time: time.Now(), Valid: true},
		Message:     message,
		ForeignType: Websocket_Import,
		Action:      Websocket_Progress,
		Data:        ImportProgress{Percent: percent, Message: message},
	}
	select {
	case UserChannel <- WSHeaderMessage{UserId: userId, Message: wsMsg}:
	default:
		// nobody is draining the channel (e.g. in tests), drop the tick
	}
}
