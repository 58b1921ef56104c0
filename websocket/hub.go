package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// The hub pushes onboarding lifecycle events (application received, payment
// recorded, institute activated) to connected admin dashboards.

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

var (
	clients   = make(map[*websocket.Conn]bool)
	clientsMu sync.RWMutex

	Register   = make(chan *websocket.Conn)
	Unregister = make(chan *websocket.Conn)
	events     = make(chan Event, 64)
)

// Publish queues an event for broadcast. It never blocks: if the hub is not
// draining, the event is dropped.
func Publish(eventType string, data interface{}) {
	select {
	case events <- Event{Type: eventType, Data: data, At: time.Now()}:
	default:
		log.Printf("websocket: dropping event %s, hub busy", eventType)
	}
}

func RunHub() {
	for {
		select {
		case conn := <-Register:
			clientsMu.Lock()
			clients[conn] = true
			clientsMu.Unlock()
			log.Printf("Admin dashboard connected (%d online)", countClients())
		case conn := <-Unregister:
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
		case event := <-events:
			broadcast(event)
		}
	}
}

func broadcast(event Event) {
	clientsMu.RLock()
	stale := make([]*websocket.Conn, 0)
	for conn := range clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error sending event to admin client: %v", err)
			conn.Close()
			stale = append(stale, conn)
		}
	}
	clientsMu.RUnlock()

	if len(stale) > 0 {
		clientsMu.Lock()
		for _, conn := range stale {
			delete(clients, conn)
		}
		clientsMu.Unlock()
	}
}

func countClients() int {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	return len(clients)
}
