// Package starcache stores computed difficulty attributes in SQLite, keyed by object list, mods, clock rate, tuning and calculator version.
package starcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("attributes not cached")

const schema = `
	CREATE TABLE IF NOT EXISTS attributes (
		map_hash    TEXT    NOT NULL,
		mods        INTEGER NOT NULL,
		tuning_hash TEXT    NOT NULL,
		version     INTEGER NOT NULL,
		full_combo  INTEGER NOT NULL,
		clock_rate  REAL    NOT NULL,
		stars       REAL    NOT NULL,
		aim         REAL    NOT NULL,
		speed       REAL    NOT NULL,
		data        TEXT    NOT NULL,
		created_at  INTEGER NOT NULL,
		PRIMARY KEY (map_hash, mods, tuning_hash, version, full_combo, clock_rate)
	);
	CREATE INDEX IF NOT EXISTS attributes_stars ON attributes (stars);
`

// Key identifies a single calculation
type Key struct {
	MapHash    string
	Mods       difficulty.Modifier
	TuningHash string
	Version    int

	// FullCombo is set when attributes include full combo time estimation
	FullCombo bool

	// ClockRate is the effective clock rate of the calculation
	ClockRate float64
}

// Entry is a cached calculation
type Entry struct {
	Key
	Attributes api.Attributes
	CreatedAt  time.Time
}

type Cache struct {
	db *sql.DB
}

// Open opens (and creates if needed) the cache database. Use ":memory:" for a throwaway cache.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open star cache: %w", err)
	}

	// In-memory databases are per connection
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping star cache: %w", err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create star cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores attributes, replacing previous entry with the same key.
// Strain states are not stored.
func (c *Cache) Put(ctx context.Context, key Key, attr api.Attributes) error {
	attr.Skills = nil

	data, err := yaml.Marshal(attr)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO attributes (
			map_hash, mods, tuning_hash, version, full_combo, clock_rate, stars, aim, speed, data, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = c.db.ExecContext(ctx, query,
		key.MapHash,
		int64(key.Mods),
		key.TuningHash,
		key.Version,
		key.FullCombo,
		key.ClockRate,
		attr.Total,
		attr.Aim,
		attr.Speed,
		string(data),
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert attributes: %w", err)
	}

	return nil
}

// Get retrieves attributes. Returns ErrNotFound if not cached.
func (c *Cache) Get(ctx context.Context, key Key) (*Entry, error) {
	query := `
		SELECT data, created_at
		FROM attributes
		WHERE map_hash = ? AND mods = ? AND tuning_hash = ? AND version = ? AND full_combo = ? AND clock_rate = ?
	`

	var (
		data      string
		createdAt int64
	)

	err := c.db.QueryRowContext(ctx, query, key.MapHash, int64(key.Mods), key.TuningHash, key.Version, key.FullCombo, key.ClockRate).Scan(&data, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get attributes: %w", err)
	}

	entry := &Entry{
		Key:       key,
		CreatedAt: time.UnixMilli(createdAt),
	}

	if err = decodeAttributes(data, &entry.Attributes); err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns all entries of a map, highest star rating first
func (c *Cache) List(ctx context.Context, mapHash string) ([]Entry, error) {
	query := `
		SELECT mods, tuning_hash, version, full_combo, clock_rate, data, created_at
		FROM attributes
		WHERE map_hash = ?
		ORDER BY stars DESC
	`

	rows, err := c.db.QueryContext(ctx, query, mapHash)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var (
			entry     = Entry{Key: Key{MapHash: mapHash}}
			mods      int64
			data      string
			createdAt int64
		)

		if err = rows.Scan(&mods, &entry.TuningHash, &entry.Version, &entry.FullCombo, &entry.ClockRate, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan attributes: %w", err)
		}

		if err = decodeAttributes(data, &entry.Attributes); err != nil {
			return nil, err
		}

		entry.Mods = difficulty.Modifier(mods)
		entry.CreatedAt = time.UnixMilli(createdAt)

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}

	return entries, nil
}

// Prune removes entries computed by calculator versions other than current
func (c *Cache) Prune(ctx context.Context, currentVersion int) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM attributes WHERE version != ?`, currentVersion)
	if err != nil {
		return 0, fmt.Errorf("prune attributes: %w", err)
	}

	return res.RowsAffected()
}

func decodeAttributes(data string, attr *api.Attributes) error {
	if err := yaml.Unmarshal([]byte(data), attr); err != nil {
		return fmt.Errorf("decode attributes: %w", err)
	}

	attr.Skills = nil

	return nil
}
