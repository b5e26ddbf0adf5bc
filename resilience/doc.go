// Package resilience provides the fault-tolerance primitives babelink puts
// in front of slow or flaky backends: the Watson API and long-running
// speech synthesis.
//
//   - Retry re-runs calls whose AppError is marked retryable.
//   - CircuitBreaker fails fast after repeated upstream failures.
//   - Bulkhead caps concurrent calls and can queue the overflow.
//   - RateLimiter spaces calls with a token bucket.
//
// Policy is the YAML-loadable description of all four; provider turns it
// into live primitives.
package resilience
