package repositories

import (
	"context"

	gametypes "github.com/cbodonnell/melange/pkg/game/types"
)

type Repository interface {
	Close(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snapshot *gametypes.Snapshot) error
	LoadSnapshot(ctx context.Context, id string) (*gametypes.Snapshot, error)
	ListSnapshots(ctx context.Context, sessionID string) ([]*gametypes.Snapshot, error)
}
