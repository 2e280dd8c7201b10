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

package sqlite

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unionfs-go/ufs/clock"
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/store/storetest"
)

func TestSQLiteBackend_Conformance(t *testing.T) {
	n := 0
	storetest.RunConformanceSuite(t, func() store.Backend {
		n++
		// A unique named in-memory database per subtest keeps them
		// isolated without touching disk.
		dsn := fmt.Sprintf("file:ufs-test-%d?mode=memory&cache=shared", n)
		b, err := Open(dsn, clock.NewFakeClock(time.Unix(0, 0)))
		require.NoError(t, err)
		t.Cleanup(func() { b.Close() })
		return b
	})
}
