// Package server assembles the HTTP service: configuration, logging,
// metrics, tracing, the fun fact client, the classifier and the gin router,
// wrapped in an http.Server with optional gzip compression.
package server
