package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Message is the broadcast envelope pushed to connected dashboards.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Notifier fans order lifecycle events out to every connected websocket
// client so restaurant dashboards do not have to poll.
type Notifier struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
}

func NewNotifier() *Notifier {
	return &Notifier{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (n *Notifier) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := n.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		n.mu.Lock()
		n.clients[conn] = true
		n.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				n.mu.Lock()
				delete(n.clients, conn)
				n.mu.Unlock()
				break
			}
		}
	}
}

func (n *Notifier) Broadcast(event string, payload interface{}) {
	messageBytes, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		log.Println("error marshaling message:", err)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for client := range n.clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			client.Close()
			delete(n.clients, client)
		}
	}
}
