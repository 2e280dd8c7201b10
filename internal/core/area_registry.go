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

// AddArea implements spec §4.3 addArea.
func (u *UFS) AddArea(name string) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("AddArea", err) }()

	if name == "" {
		return -1, ufserr.New(ufserr.BadCall, "empty name")
	}
	if name == reservedAreaName {
		return -1, ufserr.New(ufserr.IllegalName, name)
	}
	if _, exists, e := u.backend.FindArea(name); e != nil {
		return -1, e
	} else if exists {
		return -1, ufserr.New(ufserr.AlreadyExists, name)
	}

	newID, e := u.backend.NextAreaID()
	if e != nil {
		return -1, e
	}
	if e := u.backend.InsertArea(store.AreaRow{ID: newID, Name: name}); e != nil {
		return -1, e
	}
	return newID, nil
}

// GetArea implements spec §4.3 getArea.
func (u *UFS) GetArea(name string) (id int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	row, ok, e := u.backend.FindArea(name)
	if e != nil {
		return -1, e
	}
	if !ok {
		return -1, ufserr.New(ufserr.DoesNotExist, name)
	}
	return row.ID, nil
}

// RemoveArea implements spec §4.3 removeArea.
func (u *UFS) RemoveArea(id int64) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("RemoveArea", err) }()

	if id <= 0 {
		return ufserr.New(ufserr.BadCall, "id must be positive")
	}
	if _, ok, e := u.backend.GetArea(id); e != nil {
		return e
	} else if !ok {
		return ufserr.New(ufserr.DoesNotExist, "")
	}

	mapped, e := u.backend.MappingsByArea(id)
	if e != nil {
		return e
	}
	if len(mapped) > 0 {
		return ufserr.New(ufserr.ExistsInExplicitMapping, "")
	}

	return u.backend.DeleteArea(id)
}
