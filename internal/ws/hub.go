package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one dashboard notification. Everything the dashboards react
// to (scan progress, task and session changes) flows through here.
type Event struct {
	Type string      `json:"type"` // scan_progress, scan_complete, task_updated, session_updated, session_deleted
	Data interface{} `json:"data,omitempty"`
}

// Hub maintains the set of active dashboard clients and fans events
// out to the clients of a given store.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Map to quickly find clients by store (events are store-scoped)
	storeClients map[string][]*Client

	// Mutex to protect the storeClients map
	mutex sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
		clients:      make(map[*Client]bool),
		storeClients: make(map[string][]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addStoreClient(client)
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeStoreClient(client)
			}
		}
	}
}

func (h *Hub) addStoreClient(client *Client) {
	h.mutex.Lock()
	h.storeClients[client.StoreID] = append(h.storeClients[client.StoreID], client)
	count := len(h.storeClients[client.StoreID])
	h.mutex.Unlock()

	log.Printf("Dashboard client connected for store %s (user %s). Store connections: %d",
		client.StoreID, client.UserID, count)
}

func (h *Hub) removeStoreClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns := h.storeClients[client.StoreID]
	for i, conn := range conns {
		if conn == client {
			h.storeClients[client.StoreID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.storeClients[client.StoreID]) == 0 {
		delete(h.storeClients, client.StoreID)
	}

	log.Printf("Dashboard client disconnected for store %s (user %s)", client.StoreID, client.UserID)
}

// PublishEvent sends an event to every dashboard connected for a
// store. Slow clients are dropped rather than blocking the publisher.
func (h *Hub) PublishEvent(storeID string, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, client := range h.storeClients[storeID] {
		select {
		case client.Send <- message:
		default:
			// Client is not keeping up; drop the event rather than
			// block. Disconnects are handled by the pumps.
		}
	}
}
