// Copyright 2026 The ufs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sqlite is a store.Backend backed by an embedded SQLite database,
// selected via cfg.StorageConfig.Backend == cfg.BackendSQLite. The original
// ufs core kept its registries in a SQLite file (see original_source's
// SQL-backed core); this backend keeps that option available behind the
// same Backend contract the in-memory default satisfies, so the choice of
// storage mechanics never leaks into internal/core.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/unionfs-go/ufs/clock"
	"github.com/unionfs-go/ufs/internal/store"
)

func unixNanoToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

const schema = `
CREATE TABLE IF NOT EXISTS counters (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS storage (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	parent INTEGER NOT NULL,
	kind INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_storage_parent ON storage(parent);
CREATE TABLE IF NOT EXISTS areas (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS mappings (
	area INTEGER NOT NULL,
	storage INTEGER NOT NULL,
	PRIMARY KEY (area, storage)
);
CREATE INDEX IF NOT EXISTS idx_mappings_area ON mappings(area);
CREATE INDEX IF NOT EXISTS idx_mappings_storage ON mappings(storage);
`

// Backend is a store.Backend backed by *sql.DB.
type Backend struct {
	db    *sql.DB
	clock clock.Clock
}

// Open creates (if needed) and opens the SQLite database at dsn, applying
// the schema. dsn is passed straight to the mattn/go-sqlite3 driver, e.g.
// "file:/var/lib/ufs/registry.db?cache=shared". c supplies CreatedAt
// timestamps for rows the caller inserts without one; pass clock.RealClock{}
// in production.
func Open(dsn string, c clock.Clock) (*Backend, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}
	// The spec's single-writer model (§5) maps naturally onto a single
	// SQLite connection: no concurrent-writer contention to pool for.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	for _, name := range []string{"storage_id", "area_id"} {
		if _, err := db.Exec(`INSERT OR IGNORE INTO counters(name, value) VALUES (?, 0)`, name); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: seed counter %q: %w", name, err)
		}
	}
	return &Backend{db: db, clock: c}, nil
}

func (b *Backend) nextCounter(name string) (int64, error) {
	tx, err := b.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var value int64
	if err := tx.QueryRow(`SELECT value FROM counters WHERE name = ?`, name).Scan(&value); err != nil {
		return 0, err
	}
	value++
	if _, err := tx.Exec(`UPDATE counters SET value = ? WHERE name = ?`, value, name); err != nil {
		return 0, err
	}
	return value, tx.Commit()
}

func (b *Backend) NextStorageID() (int64, error) { return b.nextCounter("storage_id") }
func (b *Backend) NextAreaID() (int64, error)    { return b.nextCounter("area_id") }

func (b *Backend) InsertStorage(row store.StorageRow) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = b.clock.Now()
	}
	_, err := b.db.Exec(
		`INSERT INTO storage(id, name, parent, kind, created_at) VALUES (?, ?, ?, ?, ?)`,
		row.ID, row.Name, row.Parent, int(row.Kind), createdAt.UnixNano(),
	)
	return err
}

func (b *Backend) DeleteStorage(id int64) error {
	_, err := b.db.Exec(`DELETE FROM storage WHERE id = ?`, id)
	return err
}

func (b *Backend) GetStorage(id int64) (store.StorageRow, bool, error) {
	return scanStorageRow(b.db.QueryRow(
		`SELECT id, name, parent, kind, created_at FROM storage WHERE id = ?`, id))
}

func (b *Backend) FindStorage(parent int64, name string, kind store.Kind) (store.StorageRow, bool, error) {
	return scanStorageRow(b.db.QueryRow(
		`SELECT id, name, parent, kind, created_at FROM storage WHERE parent = ? AND name = ? AND kind = ?`,
		parent, name, int(kind)))
}

func scanStorageRow(row *sql.Row) (store.StorageRow, bool, error) {
	var (
		out       store.StorageRow
		kind      int
		createdAt int64
	)
	err := row.Scan(&out.ID, &out.Name, &out.Parent, &kind, &createdAt)
	if err == sql.ErrNoRows {
		return store.StorageRow{}, false, nil
	}
	if err != nil {
		return store.StorageRow{}, false, err
	}
	out.Kind = store.Kind(kind)
	out.CreatedAt = unixNanoToTime(createdAt)
	return out, true, nil
}

func (b *Backend) ChildrenOf(parent int64) ([]store.StorageRow, error) {
	rows, err := b.db.Query(
		`SELECT id, name, parent, kind, created_at FROM storage WHERE parent = ?`, parent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.StorageRow
	for rows.Next() {
		var (
			row       store.StorageRow
			kind      int
			createdAt int64
		)
		if err := rows.Scan(&row.ID, &row.Name, &row.Parent, &kind, &createdAt); err != nil {
			return nil, err
		}
		row.Kind = store.Kind(kind)
		row.CreatedAt = unixNanoToTime(createdAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (b *Backend) InsertArea(row store.AreaRow) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = b.clock.Now()
	}
	_, err := b.db.Exec(
		`INSERT INTO areas(id, name, created_at) VALUES (?, ?, ?)`,
		row.ID, row.Name, createdAt.UnixNano(),
	)
	return err
}

func (b *Backend) DeleteArea(id int64) error {
	_, err := b.db.Exec(`DELETE FROM areas WHERE id = ?`, id)
	return err
}

func (b *Backend) GetArea(id int64) (store.AreaRow, bool, error) {
	return scanAreaRow(b.db.QueryRow(`SELECT id, name, created_at FROM areas WHERE id = ?`, id))
}

func (b *Backend) FindArea(name string) (store.AreaRow, bool, error) {
	return scanAreaRow(b.db.QueryRow(`SELECT id, name, created_at FROM areas WHERE name = ?`, name))
}

func scanAreaRow(row *sql.Row) (store.AreaRow, bool, error) {
	var (
		out       store.AreaRow
		createdAt int64
	)
	err := row.Scan(&out.ID, &out.Name, &createdAt)
	if err == sql.ErrNoRows {
		return store.AreaRow{}, false, nil
	}
	if err != nil {
		return store.AreaRow{}, false, err
	}
	out.CreatedAt = unixNanoToTime(createdAt)
	return out, true, nil
}

func (b *Backend) AllAreas() ([]store.AreaRow, error) {
	rows, err := b.db.Query(`SELECT id, name, created_at FROM areas`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.AreaRow
	for rows.Next() {
		var (
			row       store.AreaRow
			createdAt int64
		)
		if err := rows.Scan(&row.ID, &row.Name, &createdAt); err != nil {
			return nil, err
		}
		row.CreatedAt = unixNanoToTime(createdAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (b *Backend) InsertMapping(area, storage int64) error {
	_, err := b.db.Exec(
		`INSERT OR IGNORE INTO mappings(area, storage) VALUES (?, ?)`, area, storage)
	return err
}

func (b *Backend) DeleteMapping(area, storage int64) error {
	_, err := b.db.Exec(`DELETE FROM mappings WHERE area = ? AND storage = ?`, area, storage)
	return err
}

func (b *Backend) MappingExists(area, storage int64) (bool, error) {
	var n int
	err := b.db.QueryRow(
		`SELECT COUNT(*) FROM mappings WHERE area = ? AND storage = ?`, area, storage,
	).Scan(&n)
	return n > 0, err
}

func (b *Backend) MappingsByArea(area int64) ([]int64, error) {
	return queryInt64List(b.db, `SELECT storage FROM mappings WHERE area = ?`, area)
}

func (b *Backend) MappingsByStorage(storage int64) ([]int64, error) {
	return queryInt64List(b.db, `SELECT area FROM mappings WHERE storage = ?`, storage)
}

func queryInt64List(db *sql.DB, query string, arg int64) ([]int64, error) {
	rows, err := db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (b *Backend) Counts() (storageEntries, areas, mappings int64, err error) {
	if err = b.db.QueryRow(`SELECT COUNT(*) FROM storage`).Scan(&storageEntries); err != nil {
		return 0, 0, 0, err
	}
	if err = b.db.QueryRow(`SELECT COUNT(*) FROM areas`).Scan(&areas); err != nil {
		return 0, 0, 0, err
	}
	if err = b.db.QueryRow(`SELECT COUNT(*) FROM mappings`).Scan(&mappings); err != nil {
		return 0, 0, 0, err
	}
	return storageEntries, areas, mappings, nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

var _ store.Backend = (*Backend)(nil)
