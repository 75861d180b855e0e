package repositories

import (
	"context"
	"database/sql"
	"fmt"

	gametypes "github.com/cbodonnell/melange/pkg/game/types"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	turn INTEGER NOT NULL,
	phase TEXT NOT NULL,
	sub_phase TEXT NOT NULL,
	data BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_session_id ON snapshots (session_id);
`

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snapshot *gametypes.Snapshot) error {
	q := `
	INSERT OR REPLACE INTO snapshots (id, session_id, timestamp, turn, phase, sub_phase, data)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, snapshot.ID, snapshot.SessionID, snapshot.Timestamp, snapshot.Turn, snapshot.Phase, snapshot.SubPhase, snapshot.Data)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadSnapshot(ctx context.Context, id string) (*gametypes.Snapshot, error) {
	q := `
	SELECT id, session_id, timestamp, turn, phase, sub_phase, data FROM snapshots WHERE id = ?;
	`
	snapshot := &gametypes.Snapshot{}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&snapshot.ID, &snapshot.SessionID, &snapshot.Timestamp, &snapshot.Turn, &snapshot.Phase, &snapshot.SubPhase, &snapshot.Data); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan snapshot: %v", err)
	}

	return snapshot, nil
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, sessionID string) ([]*gametypes.Snapshot, error) {
	q := `
	SELECT id, session_id, timestamp, turn, phase, sub_phase FROM snapshots
	WHERE session_id = ? ORDER BY timestamp;
	`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %v", err)
	}
	defer rows.Close()

	snapshots := make([]*gametypes.Snapshot, 0)
	for rows.Next() {
		snapshot := &gametypes.Snapshot{}
		if err := rows.Scan(&snapshot.ID, &snapshot.SessionID, &snapshot.Timestamp, &snapshot.Turn, &snapshot.Phase, &snapshot.SubPhase); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %v", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
