// Package middleware provides the gin middleware stack shared by all routes:
// CORS, per-IP rate limiting and access logging.
package middleware
