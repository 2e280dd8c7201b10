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

// Package clock supplies the Clock used to stamp diagnostic timestamps on
// registry entries. ufs has no suspension points and no timeouts (the core
// runs to completion synchronously on every call), so unlike most clocks in
// this corpus this one only needs to answer "what time is it".
package clock

import "time"

// Clock is the sole time source store.Backend implementations are allowed
// to use. It exists purely so CreatedAt stamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}
