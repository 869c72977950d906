/*
Package monitoring provides Prometheus metrics collection.

# Overview

Tracks HTTP traffic, render passes, and the boundary lifecycle: captures,
manual resets, and host reloads per app, plus app and WebSocket gauges.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	metrics.RecordCapture("news-feed")
	metrics.RecordRender("news-feed", "ok", elapsed)
*/
package monitoring
