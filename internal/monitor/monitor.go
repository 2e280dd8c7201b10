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

// Package monitor is the otel/Prometheus-backed metrics.Recorder, wired up
// when cfg.Metrics.Enabled is set. Modeled on the teacher's otel metric
// wiring: an otel MeterProvider backed by the Prometheus exporter, read
// through the exporter's own /metrics HTTP handler rather than a push
// pipeline, since ufs instances are expected to run embedded in a host
// process rather than as a standalone service.
package monitor

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/unionfs-go/ufs/metrics"
)

// Monitor is an otel-backed metrics.Recorder plus the HTTP handler that
// serves its Prometheus exposition.
type Monitor struct {
	provider *sdkmetric.MeterProvider

	mutations metric.Int64Counter
	resolves  metric.Int64Counter
	iterated  metric.Int64Counter

	storageEntries atomic.Int64
	areas          atomic.Int64
	mappings       atomic.Int64

	handler http.Handler
}

// New builds a Monitor backed by the default Prometheus registry, which
// both the exporter and Handler use.
func New() (*Monitor, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("monitor: creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter("github.com/unionfs-go/ufs")

	m := &Monitor{provider: provider, handler: promhttp.Handler()}

	m.mutations, err = meter.Int64Counter("ufs_mutations_total",
		metric.WithDescription("Count of ufs mutating operations by op and result."))
	if err != nil {
		return nil, err
	}
	m.resolves, err = meter.Int64Counter("ufs_resolve_total",
		metric.WithDescription("Count of ufs resolveStorageInView calls by result."))
	if err != nil {
		return nil, err
	}
	m.iterated, err = meter.Int64Counter("ufs_iterate_entries_total",
		metric.WithDescription("Count of directory entries produced by iterateDirInView."))
	if err != nil {
		return nil, err
	}

	if _, err := meter.Int64ObservableGauge("ufs_storage_entries",
		metric.WithDescription("Number of storage entries currently registered."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(m.storageEntries.Load())
			return nil
		})); err != nil {
		return nil, err
	}
	if _, err := meter.Int64ObservableGauge("ufs_areas",
		metric.WithDescription("Number of areas currently registered."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(m.areas.Load())
			return nil
		})); err != nil {
		return nil, err
	}
	if _, err := meter.Int64ObservableGauge("ufs_mappings",
		metric.WithDescription("Number of explicit mappings currently registered."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(m.mappings.Load())
			return nil
		})); err != nil {
		return nil, err
	}

	return m, nil
}

// Handler returns the HTTP handler serving the Prometheus exposition
// format, for a host to mount at e.g. /metrics.
func (m *Monitor) Handler() http.Handler {
	return m.handler
}

// Close shuts down the underlying MeterProvider.
func (m *Monitor) Close() error {
	return m.provider.Shutdown(context.Background())
}

func (m *Monitor) RecordMutation(op, result string) {
	m.mutations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("op", op), attribute.String("result", result)))
}

func (m *Monitor) RecordResolve(result string) {
	m.resolves.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *Monitor) RecordIterate(entries int) {
	m.iterated.Add(context.Background(), int64(entries))
}

func (m *Monitor) SetGauges(storageEntries, areas, mappings int64) {
	m.storageEntries.Store(storageEntries)
	m.areas.Store(areas)
	m.mappings.Store(mappings)
}

var _ metrics.Recorder = (*Monitor)(nil)
