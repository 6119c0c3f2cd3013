package repositories

import (
	"context"
	"fmt"
	"sync"

	gametypes "github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	// pgx.Conn is not safe for concurrent use.
	lock sync.Mutex
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database at connStr and applies the
// migrations directory. The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := applyMigrations(ctx, migrations, func(ctx context.Context, migration string) error {
		_, err := conn.Exec(ctx, migration)
		return err
	}); err != nil {
		conn.Close(ctx)
		return nil, err
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) LoadLeaderboard(ctx context.Context) ([]gametypes.LeaderboardEntry, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	rows, err := r.conn.Query(ctx, "SELECT name, score, created_at FROM leaderboard ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %v", err)
	}
	defer rows.Close()

	entries := make([]gametypes.LeaderboardEntry, 0)
	for rows.Next() {
		var entry gametypes.LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.Score, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %v", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %v", err)
	}

	return entries, nil
}

func (r *PostgresRepository) SaveLeaderboard(ctx context.Context, entries []gametypes.LeaderboardEntry) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %v", err)
	}

	batch := &pgx.Batch{}
	for i, entry := range entries {
		batch.Queue("INSERT INTO leaderboard (position, name, score, created_at) VALUES ($1, $2, $3, $4)",
			i, entry.Name, entry.Score, entry.CreatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert leaderboard entries: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
