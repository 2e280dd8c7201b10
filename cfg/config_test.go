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

package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig_DefaultIsValid(t *testing.T) {
	c := GetDefaultConfig()

	assert.NoError(t, ValidateConfig(&c))
}

func TestValidateConfig_SQLiteRequiresDSN(t *testing.T) {
	c := GetDefaultConfig()
	c.Storage.Backend = BackendSQLite

	err := ValidateConfig(&c)

	assert.Error(t, err)
}

func TestValidateConfig_UnknownBackend(t *testing.T) {
	c := GetDefaultConfig()
	c.Storage.Backend = "network"

	err := ValidateConfig(&c)

	assert.Error(t, err)
}

func TestValidateConfig_NonPositiveMaxViewSize(t *testing.T) {
	c := GetDefaultConfig()
	c.View.MaxSize = 0

	err := ValidateConfig(&c)

	assert.Error(t, err)
}

func TestValidateConfig_BadLogRotate(t *testing.T) {
	c := GetDefaultConfig()
	c.Logging.LogRotate.MaxFileSizeMb = 0

	err := ValidateConfig(&c)

	assert.Error(t, err)
}

func TestLogSeverity_Rank(t *testing.T) {
	assert.Less(t, TraceLogSeverity.Rank(), DebugLogSeverity.Rank())
	assert.Less(t, DebugLogSeverity.Rank(), InfoLogSeverity.Rank())
	assert.Equal(t, -1, LogSeverity("bogus").Rank())
}

func TestIsSQLiteBackend(t *testing.T) {
	c := GetDefaultConfig()
	assert.False(t, IsSQLiteBackend(&c))

	c.Storage.Backend = BackendSQLite
	assert.True(t, IsSQLiteBackend(&c))
}
