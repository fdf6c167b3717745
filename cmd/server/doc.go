// Package main is the entry point for the number classification service.
//
// The server provides:
//   - GET /api/classify-number?number=<n>
//   - GET /health and GET /metrics
//   - CORS, per-IP rate limiting and gzip compression
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./numclass --port 8000
//
//	# Development mode (colored logs, debug level)
//	./numclass --dev
//
//	# One-off classification
//	./numclass classify 371 --offline
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
