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

// ResolveStorageInView implements spec §4.6 resolve: the first area in v
// (left to right) that projects storage, or BASE if v ends in BASE and
// storage was unmapped by every preceding area.
func (u *UFS) ResolveStorageInView(v View, storage int64) (area int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.finishResolve(err) }()

	if e := u.validateView(v); e != nil {
		return -1, e
	}
	if _, ok, e := u.backend.GetStorage(storage); e != nil {
		return -1, e
	} else if !ok {
		return -1, ufserr.New(ufserr.DoesNotExist, "")
	}

	for _, a := range v {
		if a == BASE {
			return BASE, nil
		}
		exists, e := u.backend.MappingExists(a, storage)
		if e != nil {
			return -1, e
		}
		if exists {
			return a, nil
		}
	}

	return -1, ufserr.New(ufserr.CannotResolveStorage, "")
}
