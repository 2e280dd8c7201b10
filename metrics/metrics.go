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

// Package metrics declares the instrumentation surface internal/core
// reports through. It never affects a core return value or the error
// indicator - Recorder calls are fire-and-forget observability, exactly
// like the teacher's metrics package sitting beside its filesystem ops.
package metrics

// Recorder is the instrumentation sink a core.UFS reports to. Without one,
// a core.UFS reports to Noop(); internal/monitor supplies the
// otel/Prometheus-backed implementation used when cfg.Metrics.Enabled.
type Recorder interface {
	// RecordMutation is called once per AddDirectory/AddFile/AddArea/
	// AddMapping/RemoveDirectory/RemoveFile/RemoveArea/RemoveMapping/
	// Collapse call. op names the operation, result is "ok" or the
	// ufserr.Code string of the failure.
	RecordMutation(op, result string)

	// RecordResolve is called once per ResolveStorageInView call.
	RecordResolve(result string)

	// RecordIterate is called once per IterateDirInView call that
	// completes without error, with the number of entries in its visible
	// set. A call halted by its callback is not recorded.
	RecordIterate(entries int)

	// SetGauges reports the current size of the three registries, for the
	// ufs_storage_entries/ufs_areas/ufs_mappings gauges.
	SetGauges(storageEntries, areas, mappings int64)
}

// noop is the Recorder used when none is configured.
type noop struct{}

func (noop) RecordMutation(string, string)        {}
func (noop) RecordResolve(string)                 {}
func (noop) RecordIterate(int)                    {}
func (noop) SetGauges(int64, int64, int64)        {}

// Noop returns a Recorder that discards every observation.
func Noop() Recorder { return noop{} }
