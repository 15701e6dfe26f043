package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/calcsite/internal/model"
)

// DBFileName is the name of the history database inside its directory.
const DBFileName = "history.db"

// Options configures SQLiteStore behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// Limit is the number of entries kept per calculator.
	Limit int
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		Limit:             DefaultLimit,
	}
}

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	limit  int
	now    func() time.Time
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string, opts Options) (*SQLiteStore, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	dsn := dbPath + "?mode=rwc"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("history database not available at %s: %w", dbPath, err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		limit:  normalizeLimit(opts.Limit),
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		calculator_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		inputs TEXT NOT NULL,
		outputs TEXT,
		summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_calculator ON history(calculator_id, created_at DESC);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Save inserts the entry and prunes the calculator's history to the limit
// in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entry *model.HistoryEntry) (err error) {
	if err := prepare(entry, s.now); err != nil {
		return err
	}

	inputs, err := json.Marshal(entry.Inputs)
	if err != nil {
		return fmt.Errorf("failed to serialize inputs: %w", err)
	}
	outputs, err := json.Marshal(entry.Outputs)
	if err != nil {
		return fmt.Errorf("failed to serialize outputs: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO history (id, calculator_id, created_at, inputs, outputs, summary)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		inputs = excluded.inputs,
		outputs = excluded.outputs,
		summary = excluded.summary
	`,
		entry.ID,
		entry.CalculatorID,
		entry.CreatedAt.UnixNano(),
		string(inputs),
		string(outputs),
		entry.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	DELETE FROM history
	WHERE calculator_id = ? AND id NOT IN (
		SELECT id FROM history
		WHERE calculator_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	)
	`, entry.CalculatorID, entry.CalculatorID, s.limit)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history entry: %w", err)
	}
	return nil
}

// Load returns the entries of a calculator, newest first.
func (s *SQLiteStore) Load(ctx context.Context, calculatorID string) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, calculator_id, created_at, inputs, outputs, summary
	FROM history
	WHERE calculator_id = ?
	ORDER BY created_at DESC, id DESC
	`, calculatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]model.HistoryEntry, 0)
	for rows.Next() {
		var (
			e         model.HistoryEntry
			createdAt int64
			inputs    string
			outputs   sql.NullString
			summary   sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.CalculatorID, &createdAt, &inputs, &outputs, &summary); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		e.Summary = summary.String
		if err := json.Unmarshal([]byte(inputs), &e.Inputs); err != nil {
			return nil, fmt.Errorf("failed to parse inputs of %s: %w", e.ID, err)
		}
		if outputs.Valid && outputs.String != "" {
			if err := json.Unmarshal([]byte(outputs.String), &e.Outputs); err != nil {
				return nil, fmt.Errorf("failed to parse outputs of %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every entry of a calculator.
func (s *SQLiteStore) Clear(ctx context.Context, calculatorID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE calculator_id = ?", calculatorID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
