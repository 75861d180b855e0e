// Package messages defines the wire format replicating coarse game-state
// transitions between host and clients, and the codec that validates it.
package messages

// MessageType discriminates the message union on the wire.
type MessageType string

const (
	// MessageTypeLoad tells all clients to enter loading.
	MessageTypeLoad MessageType = "load"
	// MessageTypeLoaded tells the host a client finished loading.
	MessageTypeLoaded MessageType = "loaded"
	// MessageTypeServerInfo broadcasts the current roster of display names.
	MessageTypeServerInfo MessageType = "server_info"
)

// Message is the tagged union carried on the wire. Exactly one payload
// field is set, matching Type; the codec rejects anything else.
type Message struct {
	Type       MessageType `json:"type"`
	ServerInfo *ServerInfo `json:"serverInfo,omitempty"`
}

// ServerInfo is the host's roster broadcast.
type ServerInfo struct {
	Players []string `json:"players"`
}

// NewLoad creates a Load message.
func NewLoad() *Message {
	return &Message{Type: MessageTypeLoad}
}

// NewLoaded creates a Loaded message.
func NewLoaded() *Message {
	return &Message{Type: MessageTypeLoaded}
}

// NewServerInfo creates a ServerInfo message with the given roster.
func NewServerInfo(players []string) *Message {
	return &Message{
		Type:       MessageTypeServerInfo,
		ServerInfo: &ServerInfo{Players: players},
	}
}
