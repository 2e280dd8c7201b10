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
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unionfs-go/ufs/internal/logger"
	"github.com/unionfs-go/ufs/internal/ufsinit"
)

var serveExtRoot string

// serveCmd is a thin, logging-only host: it constructs a core.UFS from the
// resolved configuration, optionally serves its Prometheus exposition, and
// blocks until interrupted. It is demonstration scaffolding, not a tested
// surface - ufs itself never listens on a socket.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build a ufs instance from the resolved configuration and idle",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, mon, err := ufsinit.New(&UFSConfig, serveExtRoot)
		if err != nil {
			return err
		}
		defer u.Close()

		if mon == nil {
			logger.Infof("metrics disabled, idling with no HTTP surface")
			waitForSignal()
			return nil
		}
		defer mon.Close()

		addr := fmt.Sprintf(":%d", UFSConfig.Metrics.PrometheusPort)
		mux := http.NewServeMux()
		mux.Handle("/metrics", mon.Handler())
		srv := &http.Server{Addr: addr, Handler: mux}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		logger.Infof("serving Prometheus metrics on %s/metrics", addr)

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
		case <-waitForSignalCh():
			shutdownCtx, cancel := context.WithCancel(context.Background())
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
		return nil
	},
}

func waitForSignalCh() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}

func waitForSignal() {
	<-waitForSignalCh()
}

func init() {
	serveCmd.Flags().StringVar(&serveExtRoot, "ext-root", "", "Root directory backing the BASE pseudo-area.")
	rootCmd.AddCommand(serveCmd)
}
