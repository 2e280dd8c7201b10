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

// Package store defines the data layer a ufs instance is built on: the
// Storage Registry, the Area Registry and the Mapping Table of spec §4.2-
// §4.4, plus the reverse indices the Dependency Tracker needs (§9: "reverse
// indices, not recomputation"). Backend is a dumb repository - it knows
// nothing about views, BASE, ROOT, or reserved names; all of that logic
// lives one layer up, in internal/core, so the two Backend implementations
// (memory, sqlite) cannot drift from each other on anything but storage
// mechanics. Both are exercised by the same conformance suite in
// internal/store/storetest.
package store

import "time"

// Kind distinguishes a storage entry that can contain other storage
// (Directory) from one that cannot (File).
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// StorageRow is one row of the Storage Registry.
type StorageRow struct {
	ID        int64
	Name      string
	Parent    int64
	Kind      Kind
	CreatedAt time.Time
}

// AreaRow is one row of the Area Registry.
type AreaRow struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Backend is the storage contract any conformant implementation of spec §4
// must satisfy (§1: "any backend satisfying §4 contracts is conformant").
// Every method is a single synchronous call. An implementation may lock
// around each call, but sequences of calls are not atomic; callers keep to
// the single-writer model (§5).
type Backend interface {
	// Identifier Allocator (§4.1): two independent monotonic counters,
	// never reclaimed.
	NextStorageID() (int64, error)
	NextAreaID() (int64, error)

	// Storage Registry.
	InsertStorage(row StorageRow) error
	DeleteStorage(id int64) error
	GetStorage(id int64) (StorageRow, bool, error)
	FindStorage(parent int64, name string, kind Kind) (StorageRow, bool, error)
	ChildrenOf(parent int64) ([]StorageRow, error)

	// Area Registry.
	InsertArea(row AreaRow) error
	DeleteArea(id int64) error
	GetArea(id int64) (AreaRow, bool, error)
	FindArea(name string) (AreaRow, bool, error)
	AllAreas() ([]AreaRow, error)

	// Mapping Table, with the reverse indices the Dependency Tracker
	// needs: MappingsByStorage answers "area -> mapping ids" queries'
	// dual, MappingsByArea answers the forward direction.
	InsertMapping(area, storage int64) error
	DeleteMapping(area, storage int64) error
	MappingExists(area, storage int64) (bool, error)
	MappingsByArea(area int64) ([]int64, error)
	MappingsByStorage(storage int64) ([]int64, error)

	// Counts reports the current size of each registry, for the
	// ufs_storage_entries/ufs_areas/ufs_mappings gauges. It is a cheap
	// aggregate query, not a cached counter, so it always reflects
	// committed state.
	Counts() (storageEntries, areas, mappings int64, err error)

	// Close releases every table, statement cache and backing resource
	// the backend holds. No-op on an already-closed backend.
	Close() error
}
