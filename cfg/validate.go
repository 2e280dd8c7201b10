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

import "fmt"

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidStorageConfig(config *StorageConfig) error {
	switch config.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, config.Backend)
	}
	if config.Backend == BackendSQLite && config.DSN == "" {
		return fmt.Errorf("storage.dsn is required when storage.backend is %q", BackendSQLite)
	}
	return nil
}

func isValidViewConfig(config *ViewConfig) error {
	if config.MaxSize <= 0 {
		return fmt.Errorf("view.max-size must be positive, got %d", config.MaxSize)
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	if err := isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err := isValidStorageConfig(&config.Storage); err != nil {
		return fmt.Errorf("error parsing storage config: %w", err)
	}

	if err := isValidViewConfig(&config.View); err != nil {
		return fmt.Errorf("error parsing view config: %w", err)
	}

	return nil
}
