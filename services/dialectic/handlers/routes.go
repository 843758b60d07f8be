// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all dialectic routes with the router group.
//
// Description:
//
//	Registers the /v1/dialectic/* endpoints. The router group should
//	already have any required middleware applied.
//
// Endpoints:
//
//	POST /v1/dialectic/compute - Compute extension families
//	POST /v1/dialectic/query - Decide acceptance of an argument
//	POST /v1/dialectic/insights - Explain an argument's standing
//	POST /v1/dialectic/repair - Plan defenders for an argument
//	GET  /v1/dialectic/health - Health check
//
// Example:
//
//	h := handlers.NewHandlers(repair.DefaultConfig())
//	v1 := router.Group("/v1")
//	handlers.RegisterRoutes(v1, h)
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	dialectic := rg.Group("/dialectic")
	{
		dialectic.POST("/compute", h.HandleCompute)
		dialectic.POST("/query", h.HandleQuery)
		dialectic.POST("/insights", h.HandleInsights)
		dialectic.POST("/repair", h.HandleRepair)
		dialectic.GET("/health", h.HandleHealth)
	}
}
