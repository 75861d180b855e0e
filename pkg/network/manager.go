package network

import (
	"context"
	"fmt"

	"github.com/cbodonnell/melange/pkg/clients"
	gametypes "github.com/cbodonnell/melange/pkg/game/types"
	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/cbodonnell/melange/pkg/queue"
	"github.com/gorilla/websocket"
)

// HostNetworkManager accepts client connections on behalf of the host and
// translates connection lifecycle and inbound messages into events on the
// host's event queue. Events are consumed later by the simulation loop, so
// network callbacks never touch game state directly.
type HostNetworkManager struct {
	wsServer      *WSServer
	clientManager *clients.ClientManager
	eventQueue    queue.Queue
}

type NewHostNetworkManagerOptions struct {
	Port          int
	TLS           *TLSConfig
	ClientManager *clients.ClientManager
	EventQueue    queue.Queue
}

func NewHostNetworkManager(opts NewHostNetworkManagerOptions) *HostNetworkManager {
	m := &HostNetworkManager{
		clientManager: opts.ClientManager,
		eventQueue:    opts.EventQueue,
	}
	m.wsServer = NewWSServer(NewWSServerOptions{
		Port:              opts.Port,
		TLS:               opts.TLS,
		ConnectHandler:    m.handleConnect,
		DisconnectHandler: m.handleDisconnect,
		MessageHandler:    m.handleMessage,
	})
	return m
}

// Start starts the network manager and blocks until the context is done.
func (m *HostNetworkManager) Start(ctx context.Context) {
	m.wsServer.Start(ctx)
}

func (m *HostNetworkManager) handleConnect(conn *websocket.Conn, name string) error {
	clientID, err := m.clientManager.AddClient(name, conn)
	if err != nil {
		return fmt.Errorf("failed to add client: %v", err)
	}

	if err := m.eventQueue.Enqueue(&gametypes.ClientConnectEvent{
		ClientID: clientID,
		Name:     name,
	}); err != nil {
		m.clientManager.RemoveClient(clientID)
		return fmt.Errorf("failed to enqueue connect event: %v", err)
	}

	log.Info("Client %d (%s) connected", clientID, name)
	return nil
}

func (m *HostNetworkManager) handleDisconnect(conn *websocket.Conn) {
	clientID := m.clientManager.GetClientIDByWSConn(conn)
	if clientID == 0 {
		// The connection never completed registration.
		return
	}

	m.clientManager.RemoveClient(clientID)
	if err := m.eventQueue.Enqueue(&gametypes.ClientDisconnectEvent{
		ClientID: clientID,
	}); err != nil {
		log.Error("Failed to enqueue disconnect event for client %d: %v", clientID, err)
		return
	}

	log.Info("Client %d disconnected", clientID)
}

func (m *HostNetworkManager) handleMessage(ctx context.Context, conn *websocket.Conn, message *messages.Message) {
	clientID := m.clientManager.GetClientIDByWSConn(conn)
	if clientID == 0 {
		log.Warn("Received message from unknown connection %s", conn.RemoteAddr().String())
		return
	}

	if err := m.eventQueue.Enqueue(&gametypes.ClientMessageEvent{
		ClientID: clientID,
		Message:  message,
	}); err != nil {
		log.Error("Failed to enqueue message event for client %d: %v", clientID, err)
	}
}
