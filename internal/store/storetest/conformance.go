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

// Package storetest holds a single conformance suite run against every
// store.Backend implementation, so memory and sqlite cannot drift from
// each other on anything the spec cares about.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unionfs-go/ufs/internal/store"
)

// RunConformanceSuite exercises newBackend() against the store.Backend
// contract. Call it from a _test.go file in each backend's own package,
// passing a factory that returns a fresh, empty Backend.
func RunConformanceSuite(t *testing.T, newBackend func() store.Backend) {
	t.Run("IdentifierAllocatorIsMonotonicAndIndependent", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		s1, err := b.NextStorageID()
		require.NoError(t, err)
		s2, err := b.NextStorageID()
		require.NoError(t, err)
		assert.Less(t, s1, s2)

		a1, err := b.NextAreaID()
		require.NoError(t, err)
		assert.Equal(t, s1, a1, "storage and area counters are independent, so each issues the same first id")
	})

	t.Run("StorageRoundTrip", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		row := store.StorageRow{ID: 1, Name: "etc", Parent: 0, Kind: store.KindDirectory}
		require.NoError(t, b.InsertStorage(row))

		got, ok, err := b.GetStorage(1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, row.Name, got.Name)
		assert.Equal(t, row.Parent, got.Parent)
		assert.Equal(t, row.Kind, got.Kind)
		assert.False(t, got.CreatedAt.IsZero())

		_, ok, err = b.GetStorage(999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("FindStorageMatchesParentNameAndKind", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 1, Name: "x", Parent: 0, Kind: store.KindFile}))
		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 2, Name: "x", Parent: 0, Kind: store.KindDirectory}))

		got, ok, err := b.FindStorage(0, "x", store.KindDirectory)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(2), got.ID)

		_, ok, err = b.FindStorage(0, "nope", store.KindFile)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ChildrenOfReturnsOnlyDirectChildren", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 1, Name: "a", Parent: 0, Kind: store.KindDirectory}))
		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 2, Name: "b", Parent: 1, Kind: store.KindFile}))
		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 3, Name: "c", Parent: 0, Kind: store.KindFile}))

		children, err := b.ChildrenOf(0)
		require.NoError(t, err)
		require.Len(t, children, 2)

		grandchildren, err := b.ChildrenOf(1)
		require.NoError(t, err)
		require.Len(t, grandchildren, 1)
		assert.Equal(t, int64(2), grandchildren[0].ID)
	})

	t.Run("DeleteStorageRemovesRow", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 1, Name: "x", Parent: 0, Kind: store.KindFile}))
		require.NoError(t, b.DeleteStorage(1))

		_, ok, err := b.GetStorage(1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("AreaRoundTrip", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertArea(store.AreaRow{ID: 1, Name: "layer-a"}))

		got, ok, err := b.GetArea(1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "layer-a", got.Name)
		assert.False(t, got.CreatedAt.IsZero())

		found, ok, err := b.FindArea("layer-a")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(1), found.ID)

		require.NoError(t, b.DeleteArea(1))
		_, ok, err = b.GetArea(1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("AllAreasListsEverything", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertArea(store.AreaRow{ID: 1, Name: "a"}))
		require.NoError(t, b.InsertArea(store.AreaRow{ID: 2, Name: "b"}))

		all, err := b.AllAreas()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("MappingSetSemantics", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertMapping(1, 10))
		require.NoError(t, b.InsertMapping(1, 10)) // idempotent

		exists, err := b.MappingExists(1, 10)
		require.NoError(t, err)
		assert.True(t, exists)

		byArea, err := b.MappingsByArea(1)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{10}, byArea)

		byStorage, err := b.MappingsByStorage(10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1}, byStorage)

		require.NoError(t, b.DeleteMapping(1, 10))
		exists, err = b.MappingExists(1, 10)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("MappingReverseIndicesStayInSyncAcrossManyEdges", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertMapping(1, 100))
		require.NoError(t, b.InsertMapping(2, 100))
		require.NoError(t, b.InsertMapping(1, 200))

		byStorage100, err := b.MappingsByStorage(100)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 2}, byStorage100)

		byArea1, err := b.MappingsByArea(1)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{100, 200}, byArea1)

		require.NoError(t, b.DeleteMapping(2, 100))
		byStorage100, err = b.MappingsByStorage(100)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1}, byStorage100)
	})

	t.Run("CountsReflectCommittedState", func(t *testing.T) {
		b := newBackend()
		defer b.Close()

		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 1, Name: "a", Parent: 0, Kind: store.KindFile}))
		require.NoError(t, b.InsertStorage(store.StorageRow{ID: 2, Name: "b", Parent: 0, Kind: store.KindFile}))
		require.NoError(t, b.InsertArea(store.AreaRow{ID: 1, Name: "layer-a"}))
		require.NoError(t, b.InsertMapping(1, 1))

		storageEntries, areas, mappings, err := b.Counts()
		require.NoError(t, err)
		assert.Equal(t, int64(2), storageEntries)
		assert.Equal(t, int64(1), areas)
		assert.Equal(t, int64(1), mappings)

		require.NoError(t, b.DeleteStorage(2))
		storageEntries, _, _, err = b.Counts()
		require.NoError(t, err)
		assert.Equal(t, int64(1), storageEntries)
	})
}
