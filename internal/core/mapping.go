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

import "github.com/unionfs-go/ufs/internal/ufserr"

// AddMapping implements spec §4.4 addMapping.
func (u *UFS) AddMapping(area, storage int64) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("AddMapping", err) }()

	if area == BASE {
		return ufserr.New(ufserr.BadCall, "BASE cannot appear as the area of a mapping")
	}
	if _, ok, e := u.backend.GetArea(area); e != nil {
		return e
	} else if !ok {
		return ufserr.New(ufserr.DoesNotExist, "area")
	}
	if _, ok, e := u.backend.GetStorage(storage); e != nil {
		return e
	} else if !ok {
		return ufserr.New(ufserr.DoesNotExist, "storage")
	}
	if exists, e := u.backend.MappingExists(area, storage); e != nil {
		return e
	} else if exists {
		return ufserr.New(ufserr.AlreadyExists, "")
	}

	return u.backend.InsertMapping(area, storage)
}

// ProbeMapping implements spec §4.4 probeMapping: a well-formed answer, not
// an error in the usual sense, but reported through the same error
// indicator (spec §7, "Probe vs error"). An absent area or storage id is
// itself a distinct failure from mapping-does-not-exist (spec §4.4), so
// both are checked before MappingExists is asked anything.
func (u *UFS) ProbeMapping(area, storage int64) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	if _, ok, e := u.backend.GetArea(area); e != nil {
		return e
	} else if !ok {
		return ufserr.New(ufserr.DoesNotExist, "area")
	}
	if _, ok, e := u.backend.GetStorage(storage); e != nil {
		return e
	} else if !ok {
		return ufserr.New(ufserr.DoesNotExist, "storage")
	}

	exists, e := u.backend.MappingExists(area, storage)
	if e != nil {
		return e
	}
	if !exists {
		return ufserr.New(ufserr.MappingDoesNotExist, "")
	}
	return nil
}

// RemoveMapping implements spec §4.4 removeMapping.
func (u *UFS) RemoveMapping(area, storage int64) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishMutation("RemoveMapping", err) }()

	exists, e := u.backend.MappingExists(area, storage)
	if e != nil {
		return e
	}
	if !exists {
		return ufserr.New(ufserr.MappingDoesNotExist, "")
	}
	return u.backend.DeleteMapping(area, storage)
}
