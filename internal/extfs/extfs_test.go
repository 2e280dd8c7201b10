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

package extfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_MaterializeThenList(t *testing.T) {
	fs := Fake()

	err := fs.Materialize([]Creation{
		{ParentPath: "/d", Name: "f", Kind: KindFile},
		{ParentPath: "/d", Name: "sub", Kind: KindDirectory},
	})
	require.NoError(t, err)

	children, err := fs.ListChildren("/d")
	require.NoError(t, err)
	assert.ElementsMatch(t, []Entry{
		{Name: "f", Kind: KindFile},
		{Name: "sub", Kind: KindDirectory},
	}, children)

	exists, err := fs.Exists("/d/f")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFake_MaterializeIsIdempotent(t *testing.T) {
	fs := Fake()

	creations := []Creation{{ParentPath: "/d", Name: "f", Kind: KindFile}}
	require.NoError(t, fs.Materialize(creations))
	require.NoError(t, fs.Materialize(creations))

	children, err := fs.ListChildren("/d")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "f", Kind: KindFile}}, children)
}

func TestFake_ExistsFalseForMissing(t *testing.T) {
	fs := Fake()

	exists, err := fs.Exists("/nope")
	require.NoError(t, err)
	assert.False(t, exists)
}
