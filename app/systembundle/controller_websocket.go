package systembundle

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	web3socket "rvmtrack_backend/app/websocket"
)

func (c *SystemController) GetWSTicketHandler(w http.ResponseWriter, r *http.Request) {
	sessionToken := ""

	auth := r.Header.Get("Authorization")
	if len(auth) != len("Bearer 9871b73e-df71-4780-5ed6-b2cbee85f3b5") {
		c.HandleUnauthorizedError(errors.New("Not authorized"), w)
		return
	}
	tmp := strings.Split(auth, " ")
	if _, ok := (*c.Users)[tmp[1]]; !ok {
		c.HandleUnauthorizedError(errors.New("Session invalid"), w)
		return
	}
	sessionToken = tmp[1]

	ticket := c.RandomString(32)
	WSTickets[ticket] = sessionToken

	c.SendJSON(w, &ticket, http.StatusOK)
}

func (c *SystemController) HandleConnections(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticket := vars["ticket"]
	auth := WSTickets[ticket]

	user, ok := (*c.Users)[auth]
	if !ok {
		c.HandleError(errors.New("Ticket invalid"), w)
		return
	}

	// Upgrade initial GET request to a websocket
	ws, err := web3socket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	// Make sure we close the connection when the function returns
	defer ws.Close()

	// Register our new client
	if _, ok := web3socket.WebsocketUsers[user.ID]; !ok {
		web3socket.WebsocketUsers[user.ID] = make(map[*websocket.Conn]web3socket.RegisteredMessageTypes)
	}

	web3socket.WebsocketUsers[user.ID][ws] = web3socket.RegisteredMessageTypes{{MessageType: web3socket.Websocket_All, SpecifiedId: 0}}

	for {
		var msg web3socket.WebsocketMessage
		err := ws.ReadJSON(&msg)
		if err != nil {
			log.Printf("error: %v", err)
			break
		}
	}
}
