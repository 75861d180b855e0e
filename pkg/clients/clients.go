package clients

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
)

// Client represents a connected client
type Client struct {
	ID     uint32
	Name   string
	WSConn *websocket.Conn
	// Loaded marks that the client acknowledged the load broadcast.
	Loaded bool
}

// ClientManager manages connected clients
type ClientManager struct {
	clients     map[uint32]*Client
	clientsLock sync.RWMutex
	nextID      uint32
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[uint32]*Client),
		nextID:  1,
	}
}

// GetClients returns all connected clients ordered by ID
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].ID < clients[j].ID
	})
	return clients
}

// Names returns the display names of all connected clients in join order
func (cm *ClientManager) Names() []string {
	clients := cm.GetClients()
	names := make([]string, 0, len(clients))
	for _, client := range clients {
		names = append(names, client.Name)
	}
	return names
}

// AddClient adds a new client to the manager and returns its ID
func (cm *ClientManager) AddClient(name string, wsConn *websocket.Conn) (uint32, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()
	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		return 0, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	cm.clients[clientID] = &Client{
		ID:     clientID,
		Name:   name,
		WSConn: wsConn,
	}
	return clientID, nil
}

// RemoveClient removes a client from the manager.
func (cm *ClientManager) RemoveClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	delete(cm.clients, clientID)
}

// SetLoaded marks a client as having finished loading
func (cm *ClientManager) SetLoaded(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	if client, exists := cm.clients[clientID]; exists {
		client.Loaded = true
	}
}

// AllLoaded reports whether every connected client has finished loading
func (cm *ClientManager) AllLoaded() bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	for _, client := range cm.clients {
		if !client.Loaded {
			return false
		}
	}
	return true
}

// GetClientByID retrieves a client by its ID
func (cm *ClientManager) GetClientByID(clientID uint32) *Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return cm.clients[clientID]
}

// GetClientIDByWSConn retrieves the ID of the client using the given
// connection, or 0 if none is known.
func (cm *ClientManager) GetClientIDByWSConn(wsConn *websocket.Conn) uint32 {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	for _, client := range cm.clients {
		if client.WSConn == wsConn {
			return client.ID
		}
	}
	return 0
}

func (cm *ClientManager) Exists(clientID uint32) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// generateUniqueID returns an unused client ID. Caller must hold the lock.
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for i := 0; i < maxRetries; i++ {
		id := cm.nextID
		cm.nextID++
		if cm.nextID == 0 {
			cm.nextID = 1
		}
		if _, exists := cm.clients[id]; !exists {
			return id, nil
		}
	}
	return 0, fmt.Errorf("exceeded %d retries", maxRetries)
}
