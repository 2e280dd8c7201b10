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

// Package ufsinit wires a cfg.Config into a running core.UFS instance:
// picks the store.Backend the config names, opens it, and attaches the
// external filesystem collaborator. This is host plumbing, not part of the
// tested core surface - it gives every cmd subcommand one construction
// path instead of duplicating the backend switch.
package ufsinit

import (
	"fmt"

	"github.com/unionfs-go/ufs/cfg"
	"github.com/unionfs-go/ufs/clock"
	"github.com/unionfs-go/ufs/internal/core"
	"github.com/unionfs-go/ufs/internal/extfs"
	"github.com/unionfs-go/ufs/internal/logger"
	"github.com/unionfs-go/ufs/internal/monitor"
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/store/memory"
	"github.com/unionfs-go/ufs/internal/store/sqlite"
)

// New constructs a core.UFS from c, rooting the BASE collaborator's real
// filesystem view at extRoot. Pass "" for extRoot to leave BASE
// unconfigured: resolve never consults the collaborator, iteration through
// a BASE tail lists no external children, and collapse into BASE fails with
// bad-call, so no real path is touched. When c.Metrics.Enabled, mon
// is the *monitor.Monitor the UFS reports to, so a caller (cmd/serve.go) can
// mount its HTTP handler; mon is nil otherwise.
func New(c *cfg.Config, extRoot string) (u *core.UFS, mon *monitor.Monitor, err error) {
	backend, err := newBackend(c)
	if err != nil {
		return nil, nil, err
	}

	var ext extfs.FS
	if extRoot != "" {
		ext = extfs.Real(extRoot)
	}

	opts := []core.Option{core.WithLogger(logger.Default()), core.WithMaxView(c.View.MaxSize)}
	if c.Metrics.Enabled {
		mon, err = monitor.New()
		if err != nil {
			return nil, nil, fmt.Errorf("ufsinit: starting monitor: %w", err)
		}
		opts = append(opts, core.WithMetrics(mon))
	}

	return core.New(backend, ext, opts...), mon, nil
}

func newBackend(c *cfg.Config) (store.Backend, error) {
	switch c.Storage.Backend {
	case cfg.BackendMemory:
		return memory.New(clock.RealClock{}), nil
	case cfg.BackendSQLite:
		return sqlite.Open(c.Storage.DSN, clock.RealClock{})
	default:
		return nil, fmt.Errorf("ufsinit: unknown storage backend %q", c.Storage.Backend)
	}
}
