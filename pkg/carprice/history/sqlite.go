package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/pkg/errors"
)

// Entry is one recorded prediction
type Entry struct {
	ID           int64             `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	Brand        string            `json:"brand"`
	Model        string            `json:"model"`
	Fuel         string            `json:"fuel"`
	Transmission string            `json:"transmission"`
	Features     dal.FeatureVector `json:"features"`
	Price        float64           `json:"price"`
}

// Store records predictions
type Store interface {
	Record(ctx context.Context, p dal.Prediction) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// SQLiteStore keeps prediction history in a SQLite database
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (and creates if needed) the database at dataSourceName
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	dbPath := dataSourceName
	if idx := strings.Index(dataSourceName, "?"); idx != -1 {
		dbPath = dataSourceName[:idx]
	}

	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(err, "error creating database directory")
			}
		}
	}

	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000"
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to SQLite")
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "error creating tables")
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func createTables(db *sql.DB) error {
	createPredictionsTable := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        created_at INTEGER NOT NULL,
        brand TEXT NOT NULL,
        model TEXT NOT NULL,
        fuel TEXT NOT NULL,
        transmission TEXT NOT NULL,
        features TEXT NOT NULL,
        price REAL NOT NULL
    );
    `
	_, err := db.Exec(createPredictionsTable)
	return err
}

// Record stores a prediction
func (s *SQLiteStore) Record(ctx context.Context, p dal.Prediction) error {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return errors.Wrap(err, "failed to encode features")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO predictions (created_at, brand, model, fuel, transmission, features, price) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.now().UnixMilli(),
		dal.NormalizeName(p.Input.Brand),
		dal.NormalizeName(p.Input.Model),
		p.Input.Fuel,
		p.Input.Transmission,
		string(features),
		p.Price,
	)
	return errors.Wrap(err, "failed to record prediction")
}

// Recent returns up to limit predictions, newest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, brand, model, fuel, transmission, features, price FROM predictions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query predictions")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			millis   int64
			features string
		)
		if err := rows.Scan(&e.ID, &millis, &e.Brand, &e.Model, &e.Fuel, &e.Transmission, &features, &e.Price); err != nil {
			return nil, errors.Wrap(err, "failed to scan prediction")
		}
		if err := json.Unmarshal([]byte(features), &e.Features); err != nil {
			return nil, errors.Wrapf(err, "corrupt features in prediction %d", e.ID)
		}
		e.CreatedAt = time.UnixMilli(millis)
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "failed to read predictions")
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
