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
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/ufserr"
)

// resolveParent checks that parent is ROOT or names a present Directory,
// per the shared validation shape of addDirectory/addFile (spec §4.2).
func (u *UFS) resolveParent(parent int64) error {
	if parent == ROOT {
		return nil
	}
	row, ok, err := u.backend.GetStorage(parent)
	if err != nil {
		return err
	}
	if !ok {
		return ufserr.New(ufserr.ParentDoesNotExist, "")
	}
	if row.Kind == store.KindFile {
		return ufserr.New(ufserr.ParentCantBeFile, "")
	}
	return nil
}

func (u *UFS) addStorage(parent int64, name string, kind store.Kind) (int64, error) {
	if name == "" {
		return -1, ufserr.New(ufserr.BadCall, "empty name")
	}
	if name == reservedStorageName {
		return -1, ufserr.New(ufserr.IllegalName, name)
	}
	if err := u.resolveParent(parent); err != nil {
		return -1, err
	}
	if _, exists, err := u.backend.FindStorage(parent, name, kind); err != nil {
		return -1, err
	} else if exists {
		return -1, ufserr.New(ufserr.AlreadyExists, name)
	}

	id, err := u.backend.NextStorageID()
	if err != nil {
		return -1, err
	}
	if err := u.backend.InsertStorage(store.StorageRow{ID: id, Name: name, Parent: parent, Kind: kind}); err != nil {
		return -1, err
	}
	return id, nil
}

// AddDirectory implements spec §4.2 addDirectory.
func (u *UFS) AddDirectory(parent int64, name string) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("AddDirectory", err) }()

	id, err = u.addStorage(parent, name, store.KindDirectory)
	return id, err
}

// AddFile implements spec §4.2 addFile.
func (u *UFS) AddFile(parent int64, name string) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("AddFile", err) }()

	id, err = u.addStorage(parent, name, store.KindFile)
	return id, err
}

func (u *UFS) getStorage(parent int64, name string, kind store.Kind) (int64, error) {
	if parent != ROOT {
		if _, ok, err := u.backend.GetStorage(parent); err != nil {
			return -1, err
		} else if !ok {
			return -1, ufserr.New(ufserr.ParentDoesNotExist, "")
		}
	}
	row, ok, err := u.backend.FindStorage(parent, name, kind)
	if err != nil {
		return -1, err
	}
	if !ok {
		return -1, ufserr.New(ufserr.DoesNotExist, name)
	}
	return row.ID, nil
}

// GetDirectory implements spec §4.2 getDirectory.
func (u *UFS) GetDirectory(parent int64, name string) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	id, err = u.getStorage(parent, name, store.KindDirectory)
	return id, err
}

// GetFile implements spec §4.2 getFile.
func (u *UFS) GetFile(parent int64, name string) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	id, err = u.getStorage(parent, name, store.KindFile)
	return id, err
}

// hasAnyMapping reports whether storage appears in any explicit mapping,
// the Dependency Tracker's O(1) check via the reverse index (spec §9).
func (u *UFS) hasAnyMapping(storage int64) (bool, error) {
	areas, err := u.backend.MappingsByStorage(storage)
	if err != nil {
		return false, err
	}
	return len(areas) > 0, nil
}

func (u *UFS) removeStorage(id int64, kind store.Kind) error {
	if id <= 0 {
		return ufserr.New(ufserr.BadCall, "id must be positive")
	}
	row, ok, err := u.backend.GetStorage(id)
	if err != nil {
		return err
	}
	if !ok || row.Kind != kind {
		return ufserr.New(ufserr.DoesNotExist, "")
	}

	if kind == store.KindDirectory {
		children, err := u.backend.ChildrenOf(id)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return ufserr.New(ufserr.DirectoryIsNotEmpty, "")
		}
	}

	mapped, err := u.hasAnyMapping(id)
	if err != nil {
		return err
	}
	if mapped {
		return ufserr.New(ufserr.ExistsInExplicitMapping, "")
	}

	return u.backend.DeleteStorage(id)
}

// RemoveDirectory implements spec §4.2 removeDirectory. Per the Open
// Questions resolution in spec §9, both files and subdirectories count as
// children for the emptiness check.
func (u *UFS) RemoveDirectory(id int64) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("RemoveDirectory", err) }()

	return u.removeStorage(id, store.KindDirectory)
}

// RemoveFile implements spec §4.2 removeFile.
func (u *UFS) RemoveFile(id int64) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("RemoveFile", err) }()

	return u.removeStorage(id, store.KindFile)
}
