package workers

import (
	"context"
	"encoding/json"
	"time"

	gametypes "github.com/cbodonnell/melange/pkg/game/types"
	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/repositories"
	"github.com/cbodonnell/melange/pkg/session"
	"github.com/cbodonnell/melange/pkg/state"
	"github.com/google/uuid"
)

type SaveGameStateWorker struct {
	repository       repositories.Repository
	saveSnapshotChan <-chan SaveSnapshotRequest
	stateManager     state.StateManager
	interval         time.Duration
}

type NewSaveGameStateWorkerOptions struct {
	Repository       repositories.Repository
	SaveSnapshotChan <-chan SaveSnapshotRequest
	StateManager     state.StateManager
	Interval         time.Duration
}

// SaveSnapshotRequest asks the worker to persist a snapshot immediately
// instead of waiting for the next periodic save.
type SaveSnapshotRequest struct {
	Status *state.Status
}

// NewSaveGameStateWorker creates a new SaveGameStateWorker.
// The worker processes save requests from the game loop and
// periodically saves a snapshot of the session to the repository.
func NewSaveGameStateWorker(opts NewSaveGameStateWorkerOptions) *SaveGameStateWorker {
	return &SaveGameStateWorker{
		repository:       opts.Repository,
		saveSnapshotChan: opts.SaveSnapshotChan,
		stateManager:     opts.StateManager,
		interval:         opts.Interval,
	}
}

func (w *SaveGameStateWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.saveSnapshotChan:
			w.saveSnapshot(ctx, saveRequest.Status)
		case <-ticker.C:
			status, err := w.stateManager.Get(ctx)
			if err != nil {
				log.Error("Failed to get current session state: %v", err)
				continue
			}
			if status == nil || status.Screen != session.ScreenHostingGame.String() {
				continue
			}
			w.saveSnapshot(ctx, status)
		}
	}
}

func (w *SaveGameStateWorker) saveSnapshot(ctx context.Context, status *state.Status) {
	if status == nil || status.GameState == nil {
		return
	}

	data, err := json.Marshal(status.GameState)
	if err != nil {
		log.Error("Failed to marshal game state: %v", err)
		return
	}

	snapshot := &gametypes.Snapshot{
		ID:        uuid.New().String(),
		SessionID: status.SessionID,
		Timestamp: status.GameState.Timestamp,
		Turn:      status.Turn,
		Phase:     status.Phase,
		SubPhase:  status.SubPhase,
		Data:      data,
	}
	if err := w.repository.SaveSnapshot(ctx, snapshot); err != nil {
		log.Error("Failed to save snapshot: %v", err)
	}
}
