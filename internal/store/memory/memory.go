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

// Package memory is the default store.Backend: every registry held in
// plain maps, guarded by a mutex. This is the backend a ufs instance gets
// when cfg.StorageConfig.Backend is "memory", matching the spec's framing
// of ufs as an in-memory metadata engine (spec §1).
package memory

import (
	"sync"

	"github.com/unionfs-go/ufs/clock"
	"github.com/unionfs-go/ufs/internal/store"
)

type mappingKey struct {
	area    int64
	storage int64
}

// Backend is an in-memory store.Backend. The zero value is not usable; use
// New.
type Backend struct {
	mu sync.Mutex

	clock clock.Clock

	nextStorageID int64
	nextAreaID    int64

	storage map[int64]store.StorageRow
	areas   map[int64]store.AreaRow
	// mappingsByArea/mappingsByStore are reverse indices mirroring the
	// spec's dependency-tracker note: never recompute, always look up.
	mappings         map[mappingKey]struct{}
	mappingsByArea   map[int64]map[int64]struct{}
	mappingsByStore  map[int64]map[int64]struct{}
}

// New returns an empty Backend. c provides the timestamps recorded on
// StorageRow/AreaRow.CreatedAt; pass clock.RealClock{} in production.
func New(c clock.Clock) *Backend {
	return &Backend{
		clock:           c,
		storage:         make(map[int64]store.StorageRow),
		areas:           make(map[int64]store.AreaRow),
		mappings:        make(map[mappingKey]struct{}),
		mappingsByArea:  make(map[int64]map[int64]struct{}),
		mappingsByStore: make(map[int64]map[int64]struct{}),
	}
}

func (b *Backend) NextStorageID() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextStorageID++
	return b.nextStorageID, nil
}

func (b *Backend) NextAreaID() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextAreaID++
	return b.nextAreaID, nil
}

func (b *Backend) InsertStorage(row store.StorageRow) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = b.clock.Now()
	}
	b.storage[row.ID] = row
	return nil
}

func (b *Backend) DeleteStorage(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.storage, id)
	return nil
}

func (b *Backend) GetStorage(id int64) (store.StorageRow, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.storage[id]
	return row, ok, nil
}

func (b *Backend) FindStorage(parent int64, name string, kind store.Kind) (store.StorageRow, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, row := range b.storage {
		if row.Parent == parent && row.Name == name && row.Kind == kind {
			return row, true, nil
		}
	}
	return store.StorageRow{}, false, nil
}

func (b *Backend) ChildrenOf(parent int64) ([]store.StorageRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []store.StorageRow
	for _, row := range b.storage {
		if row.Parent == parent {
			out = append(out, row)
		}
	}
	return out, nil
}

func (b *Backend) InsertArea(row store.AreaRow) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = b.clock.Now()
	}
	b.areas[row.ID] = row
	return nil
}

func (b *Backend) DeleteArea(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.areas, id)
	return nil
}

func (b *Backend) GetArea(id int64) (store.AreaRow, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.areas[id]
	return row, ok, nil
}

func (b *Backend) FindArea(name string) (store.AreaRow, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, row := range b.areas {
		if row.Name == name {
			return row, true, nil
		}
	}
	return store.AreaRow{}, false, nil
}

func (b *Backend) AllAreas() ([]store.AreaRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]store.AreaRow, 0, len(b.areas))
	for _, row := range b.areas {
		out = append(out, row)
	}
	return out, nil
}

func (b *Backend) InsertMapping(area, storage int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := mappingKey{area: area, storage: storage}
	b.mappings[key] = struct{}{}
	if b.mappingsByArea[area] == nil {
		b.mappingsByArea[area] = make(map[int64]struct{})
	}
	b.mappingsByArea[area][storage] = struct{}{}
	if b.mappingsByStore[storage] == nil {
		b.mappingsByStore[storage] = make(map[int64]struct{})
	}
	b.mappingsByStore[storage][area] = struct{}{}
	return nil
}

func (b *Backend) DeleteMapping(area, storage int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.mappings, mappingKey{area: area, storage: storage})
	delete(b.mappingsByArea[area], storage)
	delete(b.mappingsByStore[storage], area)
	return nil
}

func (b *Backend) MappingExists(area, storage int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.mappings[mappingKey{area: area, storage: storage}]
	return ok, nil
}

func (b *Backend) MappingsByArea(area int64) ([]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int64, 0, len(b.mappingsByArea[area]))
	for storage := range b.mappingsByArea[area] {
		out = append(out, storage)
	}
	return out, nil
}

func (b *Backend) MappingsByStorage(storage int64) ([]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int64, 0, len(b.mappingsByStore[storage]))
	for area := range b.mappingsByStore[storage] {
		out = append(out, area)
	}
	return out, nil
}

func (b *Backend) Counts() (storageEntries, areas, mappings int64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.storage)), int64(len(b.areas)), int64(len(b.mappings)), nil
}

func (b *Backend) Close() error {
	return nil
}

var _ store.Backend = (*Backend)(nil)
