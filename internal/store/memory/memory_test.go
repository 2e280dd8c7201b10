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

package memory

import (
	"testing"
	"time"

	"github.com/unionfs-go/ufs/clock"
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/store/storetest"
)

func TestMemoryBackend_Conformance(t *testing.T) {
	storetest.RunConformanceSuite(t, func() store.Backend {
		return New(clock.NewFakeClock(time.Unix(0, 0)))
	})
}
