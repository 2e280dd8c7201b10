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

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unionfs-go/ufs/clock"
	"github.com/unionfs-go/ufs/internal/extfs"
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/store/memory"
	"github.com/unionfs-go/ufs/internal/ufserr"
)

func newTestUFS() *UFS {
	backend := memory.New(clock.NewFakeClock(time.Unix(0, 0)))
	return New(backend, extfs.Fake())
}

func assertCode(t *testing.T, err error, code ufserr.Code) {
	t.Helper()
	assert.Equal(t, code, ufserr.CodeOf(err))
}

// Scenario 1: Basic add/get.
func TestScenario_BasicAddGet(t *testing.T) {
	u := newTestUFS()

	d1, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	assert.Positive(t, d1)

	got, err := u.GetDirectory(ROOT, "d")
	require.NoError(t, err)
	assert.Equal(t, d1, got)

	f1, err := u.AddFile(d1, "f")
	require.NoError(t, err)
	assert.Positive(t, f1)

	gotF, err := u.GetFile(d1, "f")
	require.NoError(t, err)
	assert.Equal(t, f1, gotF)
}

// Scenario 2: Scope uniqueness.
func TestScenario_ScopeUniqueness(t *testing.T) {
	u := newTestUFS()

	d1, err := u.AddDirectory(ROOT, "d1")
	require.NoError(t, err)
	d2, err := u.AddDirectory(ROOT, "d2")
	require.NoError(t, err)

	f1, err := u.AddFile(d1, "f")
	require.NoError(t, err)
	f2, err := u.AddFile(d2, "f")
	require.NoError(t, err)

	assert.NotEqual(t, f1, f2)
}

// Scenario 3: Removal dependency refusal.
func TestScenario_RemovalDependencyRefusal(t *testing.T) {
	u := newTestUFS()

	a1, err := u.AddArea("a")
	require.NoError(t, err)
	d1, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)

	require.NoError(t, u.AddMapping(a1, d1))
	assertCode(t, u.RemoveDirectory(d1), ufserr.ExistsInExplicitMapping)
	assertCode(t, u.RemoveArea(a1), ufserr.ExistsInExplicitMapping)
	require.NoError(t, u.RemoveMapping(a1, d1))
	assert.NoError(t, u.RemoveDirectory(d1))
	assert.NoError(t, u.RemoveArea(a1))
}

// Scenario 4: View resolution.
func TestScenario_ViewResolution(t *testing.T) {
	u := newTestUFS()

	a1, err := u.AddArea("a")
	require.NoError(t, err)
	a2, err := u.AddArea("b")
	require.NoError(t, err)
	d1, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	f1, err := u.AddFile(d1, "f")
	require.NoError(t, err)
	require.NoError(t, u.AddMapping(a2, f1))

	area, err := u.ResolveStorageInView(View{a1, a2, BASE}, f1)
	require.NoError(t, err)
	assert.Equal(t, a2, area)

	area, err = u.ResolveStorageInView(View{a1, BASE}, f1)
	require.NoError(t, err)
	assert.Equal(t, int64(BASE), area)

	_, err = u.ResolveStorageInView(View{a1}, f1)
	assertCode(t, err, ufserr.CannotResolveStorage)
}

// Scenario 5: View validation.
func TestScenario_ViewValidation(t *testing.T) {
	u := newTestUFS()

	a1, err := u.AddArea("a")
	require.NoError(t, err)
	d1, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)

	_, err = u.ResolveStorageInView(View{a1, a1}, d1)
	assertCode(t, err, ufserr.ViewContainsDuplicates)

	_, err = u.ResolveStorageInView(View{BASE, a1}, d1)
	assertCode(t, err, ufserr.BaseIsNotLastArea)

	_, err = u.ResolveStorageInView(View{9999}, d1)
	assertCode(t, err, ufserr.InvalidAreaInView)
}

// A view longer than MAX_VIEW is refused before any of its elements are
// inspected (spec §4.4's View type invariant, "length <= MAX_VIEW").
func TestValidateView_RejectsViewLongerThanMaxView(t *testing.T) {
	u := newTestUFS()
	d1, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)

	oversized := make(View, u.maxView+1)
	for i := range oversized {
		oversized[i] = int64(i + 1)
	}

	_, err = u.ResolveStorageInView(oversized, d1)
	assertCode(t, err, ufserr.BadCall)
}

// Scenario 6: Directory iteration union.
func TestScenario_DirectoryIterationUnion(t *testing.T) {
	u := newTestUFS()

	a, err := u.AddArea("a")
	require.NoError(t, err)
	b, err := u.AddArea("b")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	f1, err := u.AddFile(d, "f1")
	require.NoError(t, err)
	f2, err := u.AddFile(d, "f2")
	require.NoError(t, err)
	_, err = u.AddFile(d, "f3")
	require.NoError(t, err)

	require.NoError(t, u.AddMapping(a, f1))
	require.NoError(t, u.AddMapping(b, f2))

	var seen []int64
	err = u.IterateDirInView(View{a, b}, d, func(id int64, index, total int) error {
		seen = append(seen, id)
		assert.Equal(t, 2, total)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{f1, f2}, seen)

	seen = nil
	err = u.IterateDirInView(View{a, b, BASE}, d, func(id int64, index, total int) error {
		seen = append(seen, id)
		assert.Equal(t, 3, total)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 3)
}

// Scenario 7: Reserved-name rejection.
func TestScenario_ReservedNameRejection(t *testing.T) {
	u := newTestUFS()

	_, err := u.AddArea("BASE")
	assertCode(t, err, ufserr.IllegalName)

	_, err = u.AddDirectory(ROOT, "ROOT")
	assertCode(t, err, ufserr.IllegalName)
}

// Scenario 8: Parent must not be a file.
func TestScenario_ParentMustNotBeFile(t *testing.T) {
	u := newTestUFS()

	x, err := u.AddFile(ROOT, "x")
	require.NoError(t, err)
	_, err = u.AddDirectory(x, "y")
	assertCode(t, err, ufserr.ParentCantBeFile)
}

func TestAddMapping_RejectsBaseAsArea(t *testing.T) {
	u := newTestUFS()
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)

	assertCode(t, u.AddMapping(BASE, d), ufserr.BadCall)
}

func TestProbeMapping_DistinctFromError(t *testing.T) {
	u := newTestUFS()
	a, err := u.AddArea("a")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)

	assertCode(t, u.ProbeMapping(a, d), ufserr.MappingDoesNotExist)
	require.NoError(t, u.AddMapping(a, d))
	assert.NoError(t, u.ProbeMapping(a, d))
	require.NoError(t, u.RemoveMapping(a, d))
	assertCode(t, u.ProbeMapping(a, d), ufserr.MappingDoesNotExist)
}

// An absent area or storage id is a distinct failure from
// mapping-does-not-exist (spec §4.4), not the same code as a well-formed
// probe of a pair that simply has no mapping.
func TestProbeMapping_AbsentAreaOrStorageIsDistinctFromMappingDoesNotExist(t *testing.T) {
	u := newTestUFS()
	a, err := u.AddArea("a")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)

	assertCode(t, u.ProbeMapping(a+100, d), ufserr.DoesNotExist)
	assertCode(t, u.ProbeMapping(a, d+100), ufserr.DoesNotExist)
	assertCode(t, u.ProbeMapping(a, d), ufserr.MappingDoesNotExist)
}

func TestRemoveMapping_NotIdempotent(t *testing.T) {
	u := newTestUFS()
	a, err := u.AddArea("a")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	require.NoError(t, u.AddMapping(a, d))

	assert.NoError(t, u.RemoveMapping(a, d))
	assertCode(t, u.RemoveMapping(a, d), ufserr.MappingDoesNotExist)
}

func TestRemoveDirectory_RefusesNonEmptyBySubdirectory(t *testing.T) {
	u := newTestUFS()
	parent, err := u.AddDirectory(ROOT, "p")
	require.NoError(t, err)
	_, err = u.AddDirectory(parent, "child")
	require.NoError(t, err)

	assertCode(t, u.RemoveDirectory(parent), ufserr.DirectoryIsNotEmpty)
}

func TestRemoveThenAdd_YieldsFreshID(t *testing.T) {
	u := newTestUFS()
	d1, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	require.NoError(t, u.RemoveDirectory(d1))

	_, err = u.GetDirectory(ROOT, "d")
	assertCode(t, err, ufserr.DoesNotExist)

	d2, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestCollapse_IntoBaseMaterializesAndConsumesMappings(t *testing.T) {
	backend := memory.New(clock.NewFakeClock(time.Unix(0, 0)))
	fake := extfs.Fake()
	u := New(backend, fake)

	a, err := u.AddArea("a")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	f, err := u.AddFile(d, "f")
	require.NoError(t, err)
	require.NoError(t, u.AddMapping(a, f))

	require.NoError(t, u.Collapse(View{a, BASE}))

	assertCode(t, u.ProbeMapping(a, f), ufserr.MappingDoesNotExist)

	exists, err := fake.Exists("/d/f")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCollapse_IntoAreaPromotesWithoutRemoving(t *testing.T) {
	u := newTestUFS()

	a, err := u.AddArea("a")
	require.NoError(t, err)
	c, err := u.AddArea("c")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	f, err := u.AddFile(d, "f")
	require.NoError(t, err)
	require.NoError(t, u.AddMapping(a, f))

	require.NoError(t, u.Collapse(View{a, c}))

	assert.NoError(t, u.ProbeMapping(c, f))
	assert.NoError(t, u.ProbeMapping(a, f))
}

func TestGetPath_WalksComponents(t *testing.T) {
	u := newTestUFS()
	d, err := u.AddDirectory(ROOT, "a")
	require.NoError(t, err)
	sub, err := u.AddDirectory(d, "b")
	require.NoError(t, err)
	f, err := u.AddFile(sub, "c")
	require.NoError(t, err)

	got, err := u.GetPath(ROOT, "a/b/c", store.KindFile)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	_, err = u.GetPath(ROOT, "a/missing/c", store.KindFile)
	assertCode(t, err, ufserr.DoesNotExist)
}

func TestListAreasAndListMappings(t *testing.T) {
	u := newTestUFS()
	a, err := u.AddArea("a")
	require.NoError(t, err)
	d, err := u.AddDirectory(ROOT, "d")
	require.NoError(t, err)
	require.NoError(t, u.AddMapping(a, d))

	areas, err := u.ListAreas()
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, a, areas[0].ID)

	mappings, err := u.ListMappings(a)
	require.NoError(t, err)
	assert.Equal(t, []int64{d}, mappings)
}

func TestViewFromArray_TruncatesAtTerminator(t *testing.T) {
	v := ViewFromArray([]int64{3, 1, Terminator, 7})
	assert.Equal(t, View{3, 1}, v)
}
