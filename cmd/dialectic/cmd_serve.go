// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/dialectica/services/dialectic/handlers"
	"github.com/AleutianAI/dialectica/services/dialectic/repair"
	"github.com/AleutianAI/dialectica/services/dialectic/telemetry"
)

var (
	servePort       int
	serveConfigPath string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the Dialectica API server",
		Long: `Starts the HTTP API under /v1/dialectic with endpoints for
semantics computation, acceptance queries, insights, and repair
planning. Prometheus metrics are served on /metrics.`,
		RunE: runServeCommand,
	}
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "",
		"Repair planner config file (json or yaml)")
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	if debugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	repairCfg, err := repair.LoadConfig(serveConfigPath)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Init(cmd.Context(), telemetry.DefaultConfig())
	if err != nil {
		logger.Warn("telemetry init failed, continuing without exporters",
			"error", err.Error())
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err.Error())
			}
		}()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if debugMode {
		router.Use(gin.Logger())
	}
	router.Use(otelgin.Middleware("dialectica"))

	if mh := telemetry.MetricsHandler(); mh != nil {
		router.GET("/metrics", gin.WrapH(mh))
	}

	v1 := router.Group("/v1")
	handlers.RegisterRoutes(v1, handlers.NewHandlers(repairCfg))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down dialectic server")
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", servePort)
	logger.Info("starting dialectic server", "address", addr)
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
