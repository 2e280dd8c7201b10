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
	"github.com/unionfs-go/ufs/internal/extfs"
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/ufserr"
)

// mappingPair is an (area, storage) pair collected from the preceding
// areas of a view before Collapse mutates anything.
type mappingPair struct {
	area    int64
	storage int64
}

// Collapse implements spec §4.8 collapse: replays every explicit mapping of
// the preceding areas P = v[:len(v)-1] into v's terminal area T. If T is
// BASE, the entries are instead materialized on the external filesystem and
// the now-redundant mappings in P are removed (spec.md's stated "mappings
// are consumed" rule for a BASE terminal). If T is a regular area, mappings
// in P are promoted into T but left intact in P - spec.md's Open Question
// 3 resolution: "apply" does not imply removal from the preceding areas.
func (u *UFS) Collapse(v View) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("Collapse", err) }()

	if e := u.validateView(v); e != nil {
		return e
	}
	if len(v) == 0 {
		return ufserr.New(ufserr.BadCall, "view must have at least one area")
	}

	terminal := v[len(v)-1]
	preceding := v[:len(v)-1]

	// Collect (area, storage) pairs from P before mutating anything, so a
	// failure partway through never leaves a partial mutation (spec §4.10).
	var pairs []mappingPair
	for _, a := range preceding {
		if a == BASE {
			continue
		}
		storages, e := u.backend.MappingsByArea(a)
		if e != nil {
			return e
		}
		for _, s := range storages {
			pairs = append(pairs, mappingPair{area: a, storage: s})
		}
	}

	if terminal == BASE {
		return u.collapseIntoBase(pairs)
	}
	return u.collapseIntoArea(terminal, pairs)
}

func (u *UFS) collapseIntoArea(terminal int64, pairs []mappingPair) error {
	for _, p := range pairs {
		exists, err := u.backend.MappingExists(terminal, p.storage)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := u.backend.InsertMapping(terminal, p.storage); err != nil {
			return err
		}
	}
	return nil
}

func (u *UFS) collapseIntoBase(pairs []mappingPair) error {
	if u.ext == nil {
		return ufserr.New(ufserr.BadCall, "no external filesystem collaborator configured")
	}

	seen := make(map[int64]struct{})
	var creations []extfs.Creation
	for _, p := range pairs {
		if _, done := seen[p.storage]; done {
			continue
		}
		seen[p.storage] = struct{}{}

		row, ok, err := u.backend.GetStorage(p.storage)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		parentPath, err := u.externalPathOf(row.Parent)
		if err != nil {
			return err
		}

		kind := extfs.KindFile
		if row.Kind == store.KindDirectory {
			kind = extfs.KindDirectory
		}
		creations = append(creations, extfs.Creation{ParentPath: parentPath, Name: row.Name, Kind: kind})
	}

	if err := u.ext.Materialize(creations); err != nil {
		return err
	}

	for _, p := range pairs {
		if err := u.backend.DeleteMapping(p.area, p.storage); err != nil {
			return err
		}
	}
	return nil
}
