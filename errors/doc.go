// Package errors provides the error values carried on rx error channels.
//
// Producers fail Operations and Subjects with *AppError so that consumers
// and the resilience package can tell retryable failures from permanent
// ones without string matching.
//
//	op.Fail(errors.Unavailable("books-api").WithCause(err))
//
//	if errors.IsRetryable(err) { ... }
package errors
