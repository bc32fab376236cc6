package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type ItemUpdateData struct {
	ItemID      string `json:"itemId"`
	InventoryID string `json:"inventoryId"`
	Quantity    int    `json:"quantity"`
}

type LowStockData struct {
	ItemID      string `json:"itemId"`
	InventoryID string `json:"inventoryId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinStock    int    `json:"minStock"`
}

type Hub struct {
	connections map[uuid.UUID]*websocket.Conn
	mu          sync.RWMutex
}

var globalHub *Hub
var once sync.Once

func GetHub() *Hub {
	once.Do(func() {
		globalHub = &Hub{
			connections: make(map[uuid.UUID]*websocket.Conn),
		}
	})
	return globalHub
}

func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[userID] = conn
	fmt.Printf("[Hub] User %s connected. Total connections: %d\n", userID, len(h.connections))
}

func (h *Hub) Unregister(userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		fmt.Printf("[Hub] User %s disconnected. Total connections: %d\n", userID, len(h.connections))
	}
}

func (h *Hub) SendToUser(userID uuid.UUID, msg Message) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Broadcast sends the message to every connected user. Write errors
// are per-connection and do not stop the fanout.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.connections {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

func (h *Hub) BroadcastItemUpdate(itemID, inventoryID uuid.UUID, quantity int) {
	h.Broadcast(Message{
		Type: "item_update",
		Data: ItemUpdateData{
			ItemID:      itemID.String(),
			InventoryID: inventoryID.String(),
			Quantity:    quantity,
		},
	})
}

func (h *Hub) BroadcastLowStock(itemID, inventoryID uuid.UUID, name string, quantity, minStock int) {
	h.Broadcast(Message{
		Type: "low_stock",
		Data: LowStockData{
			ItemID:      itemID.String(),
			InventoryID: inventoryID.String(),
			Name:        name,
			Quantity:    quantity,
			MinStock:    minStock,
		},
	})
}

func (h *Hub) IsConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) GetConnectedUserIDs() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userIDs := make([]uuid.UUID, 0, len(h.connections))
	for userID := range h.connections {
		userIDs = append(userIDs, userID)
	}
	return userIDs
}
