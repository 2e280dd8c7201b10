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

// validateView runs the View Validator of spec §4.5, in order: length
// against MAX_VIEW (spec §4.4's View type invariant), no duplicates, BASE
// only as the final element, every non-BASE area present in the Area
// Registry. Truncation at the wire-format terminator is the caller's job
// (ViewFromArray); validateView operates on the already truncated View.
func (u *UFS) validateView(v View) error {
	if len(v) > u.maxView {
		return ufserr.New(ufserr.BadCall, "view exceeds MAX_VIEW")
	}

	seen := make(map[int64]struct{}, len(v))
	for _, area := range v {
		if _, dup := seen[area]; dup {
			return ufserr.New(ufserr.ViewContainsDuplicates, "")
		}
		seen[area] = struct{}{}
	}

	for i, area := range v {
		if area == BASE && i != len(v)-1 {
			return ufserr.New(ufserr.BaseIsNotLastArea, "")
		}
	}

	for _, area := range v {
		if area == BASE {
			continue
		}
		if _, ok, err := u.backend.GetArea(area); err != nil {
			return err
		} else if !ok {
			return ufserr.New(ufserr.InvalidAreaInView, "")
		}
	}

	return nil
}
