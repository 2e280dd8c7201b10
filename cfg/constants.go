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

const (
	// Logging-level constants.

	TRACE   string = "TRACE"
	DEBUG   string = "DEBUG"
	INFO    string = "INFO"
	WARNING string = "WARNING"
	ERROR   string = "ERROR"
	OFF     string = "OFF"
)

const (
	// Storage.Backend values.

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

const (
	// DefaultMaxViewSize is the default value of View.MaxSize, i.e. MAX_VIEW.
	DefaultMaxViewSize = 64

	// DefaultPrometheusPort is used when metrics are enabled without an
	// explicit port.
	DefaultPrometheusPort = 9119
)
