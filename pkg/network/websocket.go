package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/gorilla/websocket"
)

// WSServer represents the host's WebSocket endpoint. Clients join with a
// display name and exchange wire messages until their connection is torn
// down.
type WSServer struct {
	port              int
	tls               *TLSConfig
	connectHandler    ConnectHandler
	disconnectHandler DisconnectHandler
	messageHandler    MessageHandler
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// ConnectHandler is invoked when a client joins with a display name.
type ConnectHandler func(conn *websocket.Conn, name string) error

// DisconnectHandler is invoked when a client connection goes away.
type DisconnectHandler func(conn *websocket.Conn)

// MessageHandler is invoked for each validated inbound message.
type MessageHandler func(ctx context.Context, conn *websocket.Conn, message *messages.Message)

type NewWSServerOptions struct {
	Port              int
	TLS               *TLSConfig
	ConnectHandler    ConnectHandler
	DisconnectHandler DisconnectHandler
	MessageHandler    MessageHandler
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:              opts.Port,
		tls:               opts.TLS,
		connectHandler:    opts.ConnectHandler,
		disconnectHandler: opts.DisconnectHandler,
		messageHandler:    opts.MessageHandler,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Start starts the WebSocket server.
func (s *WSServer) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		log.Debug("New WebSocket connection from %s", conn.RemoteAddr().String())
		go s.handleWSConnection(ctx, conn, name)
	})

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection handles one client connection. A payload that fails
// validation is fatal for the connection: the read loop ends and the
// connection is closed, leaving other sessions unaffected.
func (s *WSServer) handleWSConnection(ctx context.Context, conn *websocket.Conn, name string) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.disconnectHandler(conn)
		conn.Close()
	}()

	if err := s.connectHandler(conn, name); err != nil {
		log.Error("Failed to register client %s: %v", name, err)
		return
	}

	for {
		message, err := ReadMessageFromWS(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("Tearing down connection for %s: %v", conn.RemoteAddr().String(), err)
			} else {
				log.Trace("Connection closed for %s", conn.RemoteAddr().String())
			}
			return
		}

		s.messageHandler(ctx, conn, message)
	}
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(conn *websocket.Conn) (*messages.Message, error) {
	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	msg, err := messages.DeserializeMessage(message)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}
