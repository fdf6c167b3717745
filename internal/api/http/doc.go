// Package http exposes the classifier over gin routes.
//
// Routes:
//
//	GET /                      service banner
//	GET /health                health report including breaker state
//	GET /api/classify-number   classification of ?number=<raw>
//
// Invalid input yields 400 with {"number", "error": true, "message"}. A request
// whose context ends mid-classification gets an empty 499. Any other fault
// yields an opaque 500.
package http
