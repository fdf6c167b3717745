// Package funfact fetches trivia text for numbers from a numbersapi-style
// HTTP service.
//
// Client.Lookup reports every failure as ErrEnrichmentUnavailable. Client.Fact
// never fails: timeouts, non-2xx replies, undecodable bodies, an open circuit
// breaker and declined negative keys all degrade to number.DefaultFact.
// Fallback serves only the default text and is used when the lookup is
// disabled.
package funfact
