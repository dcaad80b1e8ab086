// Package resilience provides retry with exponential backoff, a circuit
// breaker and a bulkhead for producers that feed rx publishers.
//
// Retry and RetryFunc block and suit code already running off the owner
// goroutine, such as a command. RetryOperation drives single-shot
// rx.Operation attempts from the owner goroutine, scheduling each backoff on
// an rx.Scheduler:
//
//	op := resilience.RetryOperation(loop, cfg, "fetch-profile", func(n int) *rx.Operation[Profile] {
//	    return client.FetchProfile(id)
//	})
//	op.Pipe().OnReceive(show).OnError(report).Subscribe()
package resilience
