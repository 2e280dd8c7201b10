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

// GENERATED CODE - DO NOT EDIT MANUALLY.

package cfg

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the root configuration for a ufs instance and its host process.
type Config struct {
	Storage StorageConfig `yaml:"storage"`

	View ViewConfig `yaml:"view"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects and configures the store.Backend behind a ufs
// instance's registries and mapping table.
type StorageConfig struct {
	// Backend is one of "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// DSN is the data source name for the sqlite backend. Ignored by memory.
	DSN string `yaml:"dsn"`
}

// ViewConfig bounds the shape of client-supplied views.
type ViewConfig struct {
	// MaxSize is MAX_VIEW: the fixed capacity of a view array.
	MaxSize int `yaml:"max-size"`
}

// LoggingConfig controls the internal/logger package.
type LoggingConfig struct {
	Severity LogSeverity `yaml:"severity"`

	Format string `yaml:"format"`

	FilePath ResolvedPath `yaml:"file-path"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

// LogRotateLoggingConfig mirrors the knobs gopkg.in/natefinch/lumberjack.v2 exposes.
type LogRotateLoggingConfig struct {
	MaxFileSizeMb int `yaml:"max-file-size-mb"`

	BackupFileCount int `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`
}

// MetricsConfig gates the otel/Prometheus wiring in the metrics package.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	PrometheusPort int `yaml:"prometheus-port"`
}

func BindFlags(flagSet *pflag.FlagSet) error {
	var err error

	flagSet.StringP("storage-backend", "", BackendMemory, "Storage backend to use: memory or sqlite.")

	err = viper.BindPFlag("storage.backend", flagSet.Lookup("storage-backend"))
	if err != nil {
		return err
	}

	flagSet.StringP("storage-dsn", "", "", "Data source name for the sqlite storage backend.")

	err = viper.BindPFlag("storage.dsn", flagSet.Lookup("storage-dsn"))
	if err != nil {
		return err
	}

	flagSet.IntP("view-max-size", "", DefaultMaxViewSize, "Maximum number of areas a view may carry.")

	err = viper.BindPFlag("view.max-size", flagSet.Lookup("view-max-size"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", INFO, "Logging severity: TRACE, DEBUG, INFO, WARNING, ERROR or OFF.")

	err = viper.BindPFlag("logging.severity", flagSet.Lookup("log-severity"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "json", "Logging format: text or json.")

	err = viper.BindPFlag("logging.format", flagSet.Lookup("log-format"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "Path to a log file. Logs go to stderr when unset.")

	err = viper.BindPFlag("logging.file-path", flagSet.Lookup("log-file"))
	if err != nil {
		return err
	}

	flagSet.BoolP("metrics-enabled", "", false, "Expose Prometheus metrics for this ufs instance.")

	err = viper.BindPFlag("metrics.enabled", flagSet.Lookup("metrics-enabled"))
	if err != nil {
		return err
	}

	flagSet.IntP("metrics-port", "", DefaultPrometheusPort, "Port to serve Prometheus metrics on.")

	err = viper.BindPFlag("metrics.prometheus-port", flagSet.Lookup("metrics-port"))
	if err != nil {
		return err
	}

	return nil
}
