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

// IterateCallback is invoked once per entry of the deduplicated union a
// directory iteration produces. Returning a non-nil error halts the
// iteration early and that error propagates to the caller of
// IterateDirInView (spec §4.7: "a non-zero status halts iteration").
type IterateCallback func(storageID int64, index, total int) error

// buildVisibleSet implements the set-construction half of spec §4.7: the
// deduplicated union of child storage ids visible under directory through
// v. It does not invoke the callback; IterateDirInView materializes the
// full set (so total is known) before the first callback call.
func (u *UFS) buildVisibleSet(v View, directory int64) ([]int64, error) {
	children, err := u.backend.ChildrenOf(directory)
	if err != nil {
		return nil, err
	}

	visible := make(map[int64]struct{})
	endsInBase := len(v) > 0 && v[len(v)-1] == BASE

	for _, a := range v {
		if a == BASE {
			continue
		}
		for _, child := range children {
			exists, err := u.backend.MappingExists(a, child.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				visible[child.ID] = struct{}{}
			}
		}
	}

	if endsInBase {
		for _, child := range children {
			mapped, err := u.hasAnyMapping(child.ID)
			if err != nil {
				return nil, err
			}
			if !mapped {
				visible[child.ID] = struct{}{}
			}
		}

		if err := u.addExternalChildren(directory, visible); err != nil {
			return nil, err
		}
	}

	out := make([]int64, 0, len(visible))
	for id := range visible {
		out = append(out, id)
	}
	return out, nil
}

// addExternalChildren lists directory's corresponding path on the external
// filesystem and folds each entry into visible, lazily vivifying a Storage
// Registry row for any child that has never been seen through an explicit
// mapping. A purely-external file or directory has no Storage Registry
// entry of its own, but the callback contract only knows ids, so one is
// created on first sight - the same auto-vivification shape an overlay
// over an object store uses for implicit directories discovered by
// listing rather than by an explicit inode lookup.
func (u *UFS) addExternalChildren(directory int64, visible map[int64]struct{}) error {
	if u.ext == nil {
		return nil
	}

	path, err := u.externalPathOf(directory)
	if err != nil {
		return err
	}

	exists, err := u.ext.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	entries, err := u.ext.ListChildren(path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		kind := store.KindFile
		if entry.Kind == extfs.KindDirectory {
			kind = store.KindDirectory
		}

		row, ok, err := u.backend.FindStorage(directory, entry.Name, kind)
		if err != nil {
			return err
		}
		if !ok {
			id, err := u.backend.NextStorageID()
			if err != nil {
				return err
			}
			if err := u.backend.InsertStorage(store.StorageRow{
				ID: id, Name: entry.Name, Parent: directory, Kind: kind,
			}); err != nil {
				return err
			}
			row = store.StorageRow{ID: id, Name: entry.Name, Parent: directory, Kind: kind}
		}
		visible[row.ID] = struct{}{}
	}
	return nil
}

// IterateDirInView implements spec §4.7 iterate: validates v and
// directory, materializes the full visible set, then invokes cb once per
// entry in unspecified order.
func (u *UFS) IterateDirInView(v View, directory int64, cb IterateCallback) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var entries int
	defer func() { err = u.finishIterate(entries, err) }()

	if e := u.validateView(v); e != nil {
		return e
	}
	if directory != ROOT {
		row, ok, e := u.backend.GetStorage(directory)
		if e != nil {
			return e
		}
		if !ok || row.Kind != store.KindDirectory {
			return ufserr.New(ufserr.DoesNotExist, "")
		}
	}

	ids, e := u.buildVisibleSet(v, directory)
	if e != nil {
		return e
	}
	entries = len(ids)

	total := len(ids)
	for i, id := range ids {
		if e := cb(id, i, total); e != nil {
			return e
		}
	}
	return nil
}
