// Package persistence provides SQLite-based world state storage. Only the
// non-derivable state is stored: everything else regenerates from the seed.
package persistence

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/zethican/zengine/internal/chunk"
	"github.com/zethican/zengine/internal/territory"
)

// Metadata keys.
const (
	MetaSeed      = "seed"
	MetaSessionID = "session_id"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS territory_overrides (
		node_id TEXT PRIMARY KEY,
		chunk_x INTEGER NOT NULL,
		chunk_y INTEGER NOT NULL,
		kind TEXT NOT NULL,
		faction_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pending_rumors (
		position INTEGER PRIMARY KEY,
		rumor_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		significance INTEGER NOT NULL,
		biome_requirement TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS materialized_chunks (
		chunk_x INTEGER NOT NULL,
		chunk_y INTEGER NOT NULL,
		PRIMARY KEY (chunk_x, chunk_y)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// HasWorldState reports whether a prior session stored its seed.
func (db *DB) HasWorldState() bool {
	_, err := db.GetMeta(MetaSeed)
	return err == nil
}

// Seed returns the stored world seed.
func (db *DB) Seed() (int64, error) {
	v, err := db.GetMeta(MetaSeed)
	if err != nil {
		return 0, fmt.Errorf("load seed: %w", err)
	}
	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seed %q: %w", v, err)
	}
	return seed, nil
}

// SaveOverrides writes all territory capture overrides (full replace).
func (db *DB) SaveOverrides(nodes []territory.Node) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM territory_overrides"); err != nil {
		return err
	}

	for _, n := range nodes {
		_, err := tx.Exec(`INSERT INTO territory_overrides
			(node_id, chunk_x, chunk_y, kind, faction_id)
			VALUES (?, ?, ?, ?, ?)`,
			n.ID, n.ChunkX, n.ChunkY, string(n.Kind), n.FactionID,
		)
		if err != nil {
			return fmt.Errorf("insert override %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// LoadOverrides reads all stored territory capture overrides.
func (db *DB) LoadOverrides() ([]territory.Node, error) {
	rows, err := db.conn.Queryx(
		"SELECT node_id, chunk_x, chunk_y, kind, faction_id FROM territory_overrides")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []territory.Node
	for rows.Next() {
		var n territory.Node
		var kind string
		if err := rows.Scan(&n.ID, &n.ChunkX, &n.ChunkY, &kind, &n.FactionID); err != nil {
			return nil, err
		}
		n.Kind = territory.Kind(kind)
		out = append(out, n)
	}
	return out, rows.Err()
}

// SaveRumors writes the remaining rumor queue in priority order (full
// replace). Position preserves the queue order across restarts.
func (db *DB) SaveRumors(rumors []chunk.Rumor) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pending_rumors"); err != nil {
		return err
	}

	for i, r := range rumors {
		_, err := tx.Exec(`INSERT INTO pending_rumors
			(position, rumor_id, name, kind, significance, biome_requirement)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.ID, r.Name, r.Kind, r.Significance, r.BiomeRequirement,
		)
		if err != nil {
			return fmt.Errorf("insert rumor %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// LoadRumors reads the stored rumor queue in its saved order.
func (db *DB) LoadRumors() ([]chunk.Rumor, error) {
	rows, err := db.conn.Queryx(`SELECT rumor_id, name, kind, significance, biome_requirement
		FROM pending_rumors ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chunk.Rumor
	for rows.Next() {
		var r chunk.Rumor
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind, &r.Significance, &r.BiomeRequirement); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveMaterialized writes the materialized chunk set (full replace).
func (db *DB) SaveMaterialized(coords []chunk.Coord) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM materialized_chunks"); err != nil {
		return err
	}

	for _, c := range coords {
		_, err := tx.Exec(
			"INSERT INTO materialized_chunks (chunk_x, chunk_y) VALUES (?, ?)",
			c.X, c.Y,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadMaterialized reads the materialized chunk set.
func (db *DB) LoadMaterialized() ([]chunk.Coord, error) {
	rows, err := db.conn.Queryx("SELECT chunk_x, chunk_y FROM materialized_chunks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chunk.Coord
	for rows.Next() {
		var c chunk.Coord
		if err := rows.Scan(&c.X, &c.Y); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveWorldState performs a full save of the non-derivable world state.
func (db *DB) SaveWorldState(seed int64, tm *territory.Manager, cm *chunk.Manager) error {
	overrides := tm.Overrides()
	rumors := cm.PendingRumors()
	materialized := cm.MaterializedChunks()

	slog.Info("saving world state",
		"overrides", len(overrides),
		"pending_rumors", len(rumors),
		"materialized", len(materialized))

	if err := db.SaveMeta(MetaSeed, strconv.FormatInt(seed, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if _, err := db.GetMeta(MetaSessionID); err != nil {
		if err := db.SaveMeta(MetaSessionID, uuid.NewString()); err != nil {
			return fmt.Errorf("save session id: %w", err)
		}
	}
	if err := db.SaveOverrides(overrides); err != nil {
		return fmt.Errorf("save overrides: %w", err)
	}
	if err := db.SaveRumors(rumors); err != nil {
		return fmt.Errorf("save rumors: %w", err)
	}
	if err := db.SaveMaterialized(materialized); err != nil {
		return fmt.Errorf("save materialized: %w", err)
	}

	slog.Info("world state saved")
	return nil
}

// RestoreWorldState replays saved overrides, rumors, and materialized flags
// into freshly constructed managers. Must run before any chunk queries.
func (db *DB) RestoreWorldState(tm *territory.Manager, cm *chunk.Manager) error {
	overrides, err := db.LoadOverrides()
	if err != nil {
		return fmt.Errorf("load overrides: %w", err)
	}
	for _, n := range overrides {
		tm.RestoreOverride(n)
	}

	rumors, err := db.LoadRumors()
	if err != nil {
		return fmt.Errorf("load rumors: %w", err)
	}
	for _, r := range rumors {
		cm.AddRumor(r)
	}

	materialized, err := db.LoadMaterialized()
	if err != nil {
		return fmt.Errorf("load materialized: %w", err)
	}
	for _, c := range materialized {
		cm.MarkMaterialized(c.X, c.Y)
	}

	slog.Info("world state restored",
		"overrides", len(overrides),
		"pending_rumors", len(rumors),
		"materialized", len(materialized))
	return nil
}
