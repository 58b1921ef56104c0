package handlers

import (
	websocketcontrib "github.com/gofiber/contrib/websocket"

	wshub "github.com/Yash790975/vidhyakendra-backend-sub000/websocket"
)

// ServeAdminWs keeps an admin dashboard connection registered with the event
// hub until the client goes away.
func ServeAdminWs(conn *websocketcontrib.Conn) {
	wshub.Register <- conn
	defer func() {
		wshub.Unregister <- conn
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
