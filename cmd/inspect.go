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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unionfs-go/ufs/internal/logger"
	"github.com/unionfs-go/ufs/internal/ufsinit"
)

var extRoot string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the areas currently registered on a fresh ufs instance",
	Long: `inspect constructs a ufs instance from the resolved configuration and
lists its Area Registry. It is a demonstration of internal/ufsinit wiring,
not a persistence tool - a fresh instance starts with no areas.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, mon, err := ufsinit.New(&UFSConfig, extRoot)
		if err != nil {
			return err
		}
		defer u.Close()
		if mon != nil {
			defer mon.Close()
		}

		areas, err := u.ListAreas()
		if err != nil {
			return err
		}

		if len(areas) == 0 {
			logger.Infof("no areas registered")
			return nil
		}
		for _, a := range areas {
			fmt.Printf("%d\t%s\n", a.ID, a.Name)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&extRoot, "ext-root", "", "Root directory backing the BASE pseudo-area.")
	rootCmd.AddCommand(inspectCmd)
}
