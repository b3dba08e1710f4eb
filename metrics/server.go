// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 5 * time.Second
)

// Handler - exposition of every collector in the registry
func Handler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

// Server - background http server for the metrics endpoint
type Server struct {
	log    *logger.L
	server *http.Server
}

// NewServer - serve the registry on listen
func NewServer(listen string, registry *prometheus.Registry) *Server {
	return &Server{
		log: logger.New("metrics"),
		server: &http.Server{
			Addr:    listen,
			Handler: Handler(registry),
		},
	}
}

// Run - serve until shutdown
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	log.Infof("listen: %q", s.server.Addr)

	go func() {
		err := s.server.ListenAndServe()
		if nil != err && http.ErrServerClosed != err {
			log.Errorf("serve: %s", err)
		}
	}()

	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); nil != err {
		log.Errorf("shutdown: %s", err)
	}
	log.Info("stopped")
}
