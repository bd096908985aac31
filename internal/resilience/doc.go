// Package resilience provides fault tolerance patterns for calls leaving the
// process.
//
// Summarization providers are called exactly once per request. There is no
// retry layer; the circuit breaker only turns a persistently failing provider
// into an immediate error.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SummarizerConfig("gemini"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callProvider()
//	})
package resilience
