package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/event-monitor/internal/config"
	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/types"
)

// ClickHouseDB wraps the ClickHouse connection
type ClickHouseDB struct {
	conn driver.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(cfg *config.ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 30,
		},
		DialTimeout:      5 * time.Second,
		MaxOpenConns:     4,
		MaxIdleConns:     2,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying ClickHouse connection
func (db *ClickHouseDB) Conn() driver.Conn {
	return db.conn
}

// Ping checks if the database is reachable
func (db *ClickHouseDB) Ping(ctx context.Context) error {
	return db.conn.Ping(ctx)
}

// Exec executes a query without returning rows
func (db *ClickHouseDB) Exec(ctx context.Context, query string, args ...interface{}) error {
	return db.conn.Exec(ctx, query, args...)
}

// HistoryArchive appends save history entries to the save_history table.
// The in-memory history is bounded; the archive keeps everything.
type HistoryArchive struct {
	db *ClickHouseDB
}

// NewHistoryArchive creates an archive on an open ClickHouse connection
func NewHistoryArchive(db *ClickHouseDB) *HistoryArchive {
	return &HistoryArchive{db: db}
}

// Append writes one entry
func (a *HistoryArchive) Append(ctx context.Context, entry models.SaveHistoryEntry) error {
	batch, err := a.db.Conn().PrepareBatch(ctx, "INSERT INTO save_history")
	if err != nil {
		return fmt.Errorf("failed to prepare history batch: %w", err)
	}

	if err := batch.Append(
		entry.ID,
		entry.UserID,
		entry.Timestamp.UTC(),
		string(entry.Operation),
		string(entry.Status),
		entry.Error,
		string(entry.Snapshot),
	); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send history batch: %w", err)
	}
	return nil
}

// ListByUser returns a user's archived entries, most recent first
func (a *HistoryArchive) ListByUser(ctx context.Context, userID string, limit int) ([]models.SaveHistoryEntry, error) {
	query := `
		SELECT id, user_id, timestamp, operation, status, error, snapshot
		FROM save_history
		WHERE user_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := a.db.Conn().Query(ctx, query, userID, uint64(limit)) // #nosec G115 - limit is positive
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.SaveHistoryEntry
	for rows.Next() {
		var (
			e                           models.SaveHistoryEntry
			operation, status, snapshot string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &operation, &status, &e.Error, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Operation = types.OperationKind(operation)
		e.Status = types.SaveStatus(status)
		if snapshot != "" {
			e.Snapshot = []byte(snapshot)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
