package repositories

import (
	"context"
	"fmt"

	gametypes "github.com/cbodonnell/melange/pkg/game/types"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	timestamp BIGINT NOT NULL,
	turn INTEGER NOT NULL,
	phase TEXT NOT NULL,
	sub_phase TEXT NOT NULL,
	data BYTEA NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_session_id ON snapshots (session_id);
`

// NewPostgresRepository creates a new PostgresRepository.
// It panics if it is unable to connect to the database.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) Repository {
	conn := connectDb(ctx, connStr)
	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		panic(fmt.Sprintf("Unable to create schema: %v\n", err))
	}
	return &PostgresRepository{
		conn: conn,
	}
}

func connectDb(ctx context.Context, connStr string) *pgx.Conn {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Unable to connect to database: %v\n", err))
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		panic(fmt.Sprintf("Unable to query database: %v\n", err))
	}

	fmt.Printf("Connected to %s as %s\n", database, username)

	return conn
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveSnapshot(ctx context.Context, snapshot *gametypes.Snapshot) error {
	q := `
	INSERT INTO snapshots (id, session_id, timestamp, turn, phase, sub_phase, data)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET timestamp = $3, turn = $4, phase = $5, sub_phase = $6, data = $7;
	`
	_, err := r.conn.Exec(ctx, q, snapshot.ID, snapshot.SessionID, snapshot.Timestamp, snapshot.Turn, snapshot.Phase, snapshot.SubPhase, snapshot.Data)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadSnapshot(ctx context.Context, id string) (*gametypes.Snapshot, error) {
	q := `
	SELECT id, session_id, timestamp, turn, phase, sub_phase, data FROM snapshots WHERE id = $1;
	`
	snapshot := &gametypes.Snapshot{}
	if err := r.conn.QueryRow(ctx, q, id).Scan(&snapshot.ID, &snapshot.SessionID, &snapshot.Timestamp, &snapshot.Turn, &snapshot.Phase, &snapshot.SubPhase, &snapshot.Data); err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan snapshot: %v", err)
	}

	return snapshot, nil
}

func (r *PostgresRepository) ListSnapshots(ctx context.Context, sessionID string) ([]*gametypes.Snapshot, error) {
	q := `
	SELECT id, session_id, timestamp, turn, phase, sub_phase FROM snapshots
	WHERE session_id = $1 ORDER BY timestamp;
	`
	rows, err := r.conn.Query(ctx, q, sessionID)
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
