package types

import "github.com/cbodonnell/melange/pkg/messages"

// ClientConnectEvent is queued when a client joins the lobby.
type ClientConnectEvent struct {
	ClientID uint32
	Name     string
}

// ClientDisconnectEvent is queued when a client connection goes away.
type ClientDisconnectEvent struct {
	ClientID uint32
}

// ClientMessageEvent is queued for each decoded inbound wire message.
type ClientMessageEvent struct {
	ClientID uint32
	Message  *messages.Message
}
