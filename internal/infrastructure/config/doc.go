// Package config provides 12-factor configuration for the number classifier.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override the port and development mode.
//
// Configuration Sections:
//   - Server: listen address, timeouts, response compression
//   - FunFact: external trivia lookup (URL template, timeout, breaker)
//   - Logging: log level and output format
//   - RateLimit: per-IP or global rate limiting
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Server running on %s\n", cfg.Addr())
//
// Environment Variables:
//   - PORT, HOST, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT, SERVER_COMPRESSION
//   - FUNFACT_ENABLED, FUNFACT_URL, FUNFACT_TIMEOUT, FUNFACT_RETRIES, FUNFACT_ALLOW_NEGATIVE
//   - FUNFACT_BREAKER_FAILURES, FUNFACT_BREAKER_COOLDOWN, FUNFACT_PROPAGATE_TRACE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, RATE_LIMIT_SCOPE
package config
