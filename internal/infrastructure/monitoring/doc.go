/*
Package monitoring provides Prometheus metrics for the classifier service.

# Overview

Each Metrics value owns a private registry holding HTTP request metrics,
classification counters per input branch, fun fact lookup outcomes and
latency, uptime, and the standard Go/process collectors.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordClassification("float")
	metrics.RecordFunFact("fallback", elapsed)
*/
package monitoring
