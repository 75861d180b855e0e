package types

// Snapshot is a persisted point-in-time capture of a game session.
type Snapshot struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionID"`
	Timestamp int64  `json:"timestamp"`
	Turn      int    `json:"turn"`
	Phase     string `json:"phase"`
	SubPhase  string `json:"subPhase"`
	// Data is the JSON-encoded GameState.
	Data []byte `json:"data"`
}
