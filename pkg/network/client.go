package network

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/cbodonnell/melange/pkg/queue"
	"github.com/gorilla/websocket"
)

// ClientNetworkManager dials a host and feeds validated inbound messages
// onto a queue for the client's update loop to drain.
type ClientNetworkManager struct {
	serverURL    string
	name         string
	messageQueue queue.Queue
	conn         *websocket.Conn
	cancel       context.CancelFunc
}

type NewClientNetworkManagerOptions struct {
	// ServerURL is the host's WebSocket base URL, e.g. ws://localhost:8888.
	ServerURL string
	// Name is the display name sent with the join request.
	Name         string
	MessageQueue queue.Queue
}

func NewClientNetworkManager(opts NewClientNetworkManagerOptions) (*ClientNetworkManager, error) {
	if opts.ServerURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return &ClientNetworkManager{
		serverURL:    opts.ServerURL,
		name:         opts.Name,
		messageQueue: opts.MessageQueue,
	}, nil
}

// Start connects to the host and starts the read loop in a goroutine.
func (m *ClientNetworkManager) Start(ctx context.Context) error {
	u, err := url.Parse(m.serverURL)
	if err != nil {
		return fmt.Errorf("failed to parse server URL: %v", err)
	}
	u.Path = "/join"
	u.RawQuery = url.Values{"name": []string{m.name}}.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %v", u.String(), err)
	}
	m.conn = conn

	ctx, m.cancel = context.WithCancel(ctx)
	go m.readLoop(ctx, conn)

	return nil
}

// Stop closes the connection and stops the read loop.
func (m *ClientNetworkManager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
}

// Send writes a message to the host.
func (m *ClientNetworkManager) Send(msg *messages.Message) error {
	if m.conn == nil {
		return fmt.Errorf("not connected")
	}
	if err := WriteMessageToWS(m.conn, msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	return nil
}

func (m *ClientNetworkManager) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		message, err := ReadMessageFromWS(conn)
		if err != nil {
			select {
			case <-ctx.Done():
			default:
				log.Error("Failed to read message from server: %v", err)
			}
			return
		}

		if err := m.messageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue server message: %v", err)
		}
	}
}
