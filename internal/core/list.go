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

// AreaInfo is one row of a ListAreas projection.
type AreaInfo struct {
	ID   int64
	Name string
}

// ListAreas is a read-only enumeration of the Area Registry. It mutates
// nothing and cannot violate any invariant.
func (u *UFS) ListAreas() (out []AreaInfo, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	rows, e := u.backend.AllAreas()
	if e != nil {
		return nil, e
	}
	out = make([]AreaInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, AreaInfo{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

// ListMappings is a read-only dump of the Dependency Tracker's
// area -> mapping ids reverse index (spec.md §9), exposing every storage id
// area explicitly maps.
func (u *UFS) ListMappings(area int64) (out []int64, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { err = u.setErr(err) }()

	out, e := u.backend.MappingsByArea(area)
	if e != nil {
		return nil, e
	}
	return out, nil
}
