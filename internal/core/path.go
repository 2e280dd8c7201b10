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
	"strings"

	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/ufserr"
)

// externalPathOf reconstructs the POSIX-style path a storage id would have
// on the external filesystem, walking the parent chain via the Storage
// Registry. Needed for BASE-tail listing and for collapse-into-BASE
// materialization, since extfs.FS only speaks paths.
func (u *UFS) externalPathOf(id int64) (string, error) {
	if id == ROOT {
		return "/", nil
	}
	var segments []string
	for id != ROOT {
		row, ok, err := u.backend.GetStorage(id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ufserr.New(ufserr.DoesNotExist, "")
		}
		segments = append([]string{row.Name}, segments...)
		id = row.Parent
	}
	return "/" + strings.Join(segments, "/"), nil
}

// walkPath resolves successive path components under parent through
// getStorage, stopping at the final component's kind.
func (u *UFS) walkPath(parent int64, path string, finalKind store.Kind) (int64, error) {
	components := strings.Split(strings.Trim(path, "/"), "/")
	if len(components) == 0 || (len(components) == 1 && components[0] == "") {
		return -1, ufserr.New(ufserr.BadCall, "empty path")
	}

	current := parent
	for i, name := range components {
		kind := store.KindDirectory
		if i == len(components)-1 {
			kind = finalKind
		}
		id, err := u.getStorage(current, name, kind)
		if err != nil {
			return -1, err
		}
		current = id
	}
	return current, nil
}

// GetPath is sugar over getDirectory/getFile (spec.md §4.2) that walks
// successive components of path under parent, returning the same error
// codes the single-component primitives would on the first missing
// intermediate directory.
func (u *UFS) GetPath(parent int64, path string, kind store.Kind) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	return u.walkPath(parent, path, kind)
}

// ResolvePath is sugar combining GetPath with ResolveStorageInView: it
// resolves path under parent to a storage id, then asks the Resolver which
// area of v projects it.
func (u *UFS) ResolvePath(v View, parent int64, path string, kind store.Kind) (int64, error) {
	storageID, err := u.GetPath(parent, path, kind)
	if err != nil {
		return -1, err
	}
	return u.ResolveStorageInView(v, storageID)
}
