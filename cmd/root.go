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

// Package cmd is a thin, logging-only host around internal/core: it parses
// flags and a config file into a cfg.Config, validates it, constructs a
// ufs instance through internal/ufsinit, and hands control to a
// subcommand. It carries no ufs semantics of its own.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unionfs-go/ufs/cfg"
	"github.com/unionfs-go/ufs/internal/logger"
)

var (
	cfgFile       string
	bindErr       error
	configFileErr error
	unmarshalErr  error

	// UFSConfig is the parsed configuration handed to every subcommand's
	// RunE, after PersistentPreRunE has validated it.
	UFSConfig cfg.Config
)

var rootCmd = &cobra.Command{
	Use:   "ufs",
	Short: "Inspect and exercise a union filesystem overlay metadata engine",
	Long: `ufs is a metadata engine for a union filesystem overlay: directories
and files live in a Storage Registry, named projections live in an Area
Registry, and an explicit Mapping Table relates the two. This binary is a
demonstration host around that engine, not a mounted filesystem.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return bindErr
		}
		if configFileErr != nil {
			return configFileErr
		}
		if unmarshalErr != nil {
			return unmarshalErr
		}
		if err := cfg.ValidateConfig(&UFSConfig); err != nil {
			return err
		}
		return logger.InitLogFile(UFSConfig.Logging)
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "Path to a YAML config file.")
	bindErr = cfg.BindFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile == "" {
		unmarshalErr = viper.Unmarshal(&UFSConfig, viper.DecodeHook(cfg.DecodeHook()))
		return
	}

	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		configFileErr = fmt.Errorf("error while reading config file: %w", err)
		return
	}
	unmarshalErr = viper.Unmarshal(&UFSConfig, viper.DecodeHook(cfg.DecodeHook()))
}
