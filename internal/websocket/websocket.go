package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketManager manages WebSocket connections for real-time updates
type WebSocketManager struct {
	connections map[*websocket.Conn]bool
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	ID        string      `json:"id,omitempty"`
}

// NewWebSocketManager creates a new WebSocket manager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		connections: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from localhost for development
				return true
			},
		},
	}
}

// HandleConnection handles a new WebSocket connection
func (wsm *WebSocketManager) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := wsm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %s", err.Error())
		return
	}
	defer conn.Close()

	log.Println("WebSocket client connected")

	wsm.mutex.Lock()
	wsm.connections[conn] = true
	wsm.mutex.Unlock()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %s", err.Error())
			}
			break
		}

		var data map[string]interface{}
		err = json.Unmarshal(message, &data)
		if err != nil {
			log.Printf("Failed to parse message: %s", err.Error())
			continue
		}

		msgType, ok := data["type"].(string)
		if !ok {
			continue
		}

		switch msgType {
		case "ping":
			wsm.sendMessage(conn, WSMessage{
				Type:      "pong",
				Timestamp: time.Now(),
				Data:      map[string]interface{}{"status": "ok"},
			})
		}
	}

	log.Println("WebSocket client disconnected")

	wsm.mutex.Lock()
	delete(wsm.connections, conn)
	wsm.mutex.Unlock()
}

// BroadcastMessage broadcasts a message to all connected clients
func (wsm *WebSocketManager) BroadcastMessage(msgType string, data interface{}) {
	wsm.mutex.RLock()
	connections := make([]*websocket.Conn, 0, len(wsm.connections))
	for conn := range wsm.connections {
		connections = append(connections, conn)
	}
	wsm.mutex.RUnlock()

	message := WSMessage{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
		ID:        uuid.NewString(),
	}

	for _, conn := range connections {
		wsm.sendMessage(conn, message)
	}
}

// sendMessage sends a message to a specific connection
func (wsm *WebSocketManager) sendMessage(conn *websocket.Conn, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal WebSocket message: %v", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("Failed to send WebSocket message: %v", err)
		// Remove broken connection
		wsm.mutex.Lock()
		delete(wsm.connections, conn)
		wsm.mutex.Unlock()
	}
}

// GetConnectionCount returns the number of active connections
func (wsm *WebSocketManager) GetConnectionCount() int {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()
	return len(wsm.connections)
}

// BroadcastEnhancementComplete broadcasts the result summary of an
// enhancement run
func (wsm *WebSocketManager) BroadcastEnhancementComplete(nodeCount, edgeCount int) {
	wsm.BroadcastMessage("enhancement_complete", map[string]interface{}{
		"node_count": nodeCount,
		"edge_count": edgeCount,
	})
}

// BroadcastAnalyticsUpdate broadcasts a freshly computed analytics summary
func (wsm *WebSocketManager) BroadcastAnalyticsUpdate(summary interface{}) {
	wsm.BroadcastMessage("analytics_update", summary)
}

// BroadcastLogMessage broadcasts log messages
func (wsm *WebSocketManager) BroadcastLogMessage(level, message string) {
	data := map[string]interface{}{
		"level":   level,
		"message": message,
	}

	wsm.BroadcastMessage("log", data)
}
