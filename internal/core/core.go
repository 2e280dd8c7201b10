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

// Package core is the ufs engine: the Storage Registry, Area Registry,
// Mapping Table, View Validator, Resolver, Directory Iterator and Collapse
// Engine, built generically over any store.Backend. Every exported method
// sets the process-wide error indicator as the last side effect of the
// call, success or failure, and performs no partial mutation on failure.
package core

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/unionfs-go/ufs/internal/extfs"
	"github.com/unionfs-go/ufs/internal/logger"
	"github.com/unionfs-go/ufs/internal/store"
	"github.com/unionfs-go/ufs/internal/ufserr"
	"github.com/unionfs-go/ufs/metrics"
)

// ROOT is the implicit root directory's storage id.
const ROOT int64 = 0

// BASE is the external filesystem pseudo-area's id.
const BASE int64 = 0

// reserved names, disallowed from the respective namespaces.
const (
	reservedStorageName = "ROOT"
	reservedAreaName    = "BASE"
)

// defaultMaxView is MAX_VIEW when the host never calls WithMaxView,
// matching cfg.DefaultMaxViewSize.
const defaultMaxView = 64

// UFS is a single instance: one set of registries, one mapping table, one
// error indicator. A UFS is not safe for concurrent mutation (callers must
// serialize writers externally); the coarse mutex held here serializes
// individual calls so that misuse cannot corrupt state mid-call.
type UFS struct {
	mu sync.Mutex

	backend store.Backend
	ext     extfs.FS
	log     *slog.Logger
	rec     metrics.Recorder
	maxView int

	lastErr ufserr.Code
}

// Option configures optional collaborators of a UFS at construction.
type Option func(*UFS)

// WithLogger attaches l as the destination for per-operation logging.
// Without this option, or with a nil l, logger.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(u *UFS) {
		if l != nil {
			u.log = l
		}
	}
}

// WithMetrics attaches rec as the instrumentation sink. Without this
// option, every observation is discarded.
func WithMetrics(rec metrics.Recorder) Option {
	return func(u *UFS) { u.rec = rec }
}

// WithMaxView sets MAX_VIEW, the View Validator's length ceiling (spec
// §4.4's View type invariant). n <= 0 is ignored and the default is kept.
func WithMaxView(n int) Option {
	return func(u *UFS) {
		if n > 0 {
			u.maxView = n
		}
	}
}

// New constructs a UFS over backend, using ext as the BASE collaborator.
// ROOT and BASE are implicit; no rows are created for them.
func New(backend store.Backend, ext extfs.FS, opts ...Option) *UFS {
	u := &UFS{backend: backend, ext: ext, lastErr: ufserr.NoError, log: logger.Default(), rec: metrics.Noop(), maxView: defaultMaxView}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Close releases the backend. No-op if u is nil.
func (u *UFS) Close() error {
	if u == nil {
		return nil
	}
	return u.backend.Close()
}

// Errno returns the error indicator left by the most recently completed
// operation on u (spec §6, "Error indicator").
func (u *UFS) Errno() ufserr.Code {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastErr
}

// setErr records the outcome of an operation as the required postcondition
// of every public call (spec §9, "Error indicator as side channel") and
// returns err unchanged, so call sites can `return u.setErr(err)`.
func (u *UFS) setErr(err error) error {
	u.lastErr = ufserr.CodeOf(err)
	return err
}

// finishMutation is setErr plus the logging/metrics contract SPEC_FULL
// §2.2/§2.3 impose on every mutating operation: one DEBUG line on success,
// one INFO line carrying the error code on refusal, and a
// ufs_mutations_total{op,result} observation either way. Every mutating
// method's deferred cleanup calls this instead of setErr directly.
func (u *UFS) finishMutation(op string, err error) error {
	requestID := uuid.NewString()
	if err != nil {
		u.log.Info("ufs mutation refused", "op", op, "code", ufserr.CodeOf(err).String(), "request_id", requestID)
		u.rec.RecordMutation(op, ufserr.CodeOf(err).String())
	} else {
		u.log.Debug("ufs mutation applied", "op", op, "request_id", requestID)
		u.rec.RecordMutation(op, "ok")
		u.reportGauges()
	}
	return u.setErr(err)
}

// finishResolve is the ResolveStorageInView counterpart of finishMutation:
// one DEBUG log line plus a ufs_resolve_total{result} observation.
func (u *UFS) finishResolve(err error) error {
	requestID := uuid.NewString()
	result := "ok"
	if err != nil {
		result = ufserr.CodeOf(err).String()
	}
	u.log.Debug("ufs resolve", "result", result, "request_id", requestID)
	u.rec.RecordResolve(result)
	return u.setErr(err)
}

// finishIterate is the IterateDirInView counterpart: entries is the size of
// the visible set, reported only when the call succeeded (a refusal, or a
// halt by the callback, carries no entry count).
func (u *UFS) finishIterate(entries int, err error) error {
	requestID := uuid.NewString()
	if err != nil {
		u.log.Info("ufs iterate refused", "code", ufserr.CodeOf(err).String(), "request_id", requestID)
	} else {
		u.log.Debug("ufs iterate", "entries", entries, "request_id", requestID)
		u.rec.RecordIterate(entries)
	}
	return u.setErr(err)
}

// reportGauges refreshes the registry-size gauges from the backend's own
// count, so a gauge read never drifts from committed state. Failures here
// are non-fatal to the calling mutation - gauges are instrumentation, never
// part of the return value.
func (u *UFS) reportGauges() {
	storageEntries, areas, mappings, err := u.backend.Counts()
	if err != nil {
		return
	}
	u.rec.SetGauges(storageEntries, areas, mappings)
}
