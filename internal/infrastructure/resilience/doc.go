/*
Package resilience provides a circuit breaker for calls to external services.

# Overview

The fun fact lookup goes through a breaker so that a failing trivia service
degrades to fallback text immediately instead of costing every request a
full timeout.

# Usage

	breaker := resilience.New("funfact", resilience.Settings{
		Timeout:     30 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailures(5),
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("breaker state change", zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})

	err := breaker.Execute(func() error {
		return lookup(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
