// handlers/websocket.go
package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/opsdesk/shiftdesk/config"
	"github.com/opsdesk/shiftdesk/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func WebSocketHandler(hub *services.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(config.UserIDKey).(int)
		if !ok || userID == 0 {
			http.Error(w, "invalid user", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("Upgrade error:", err)
			return
		}

		client := &services.Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: userID,
		}

		hub.Register(client)

		go hub.ReadPump(client)
		go hub.WritePump(client)
	}
}
