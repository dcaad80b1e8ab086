// Package rx provides a push-based, multicast publish/subscribe primitive
// for single-owner, cooperative programs.
//
// A Publisher multicasts values and errors to any number of pipelines. Every
// variant shares the same reentrancy-safe delivery loop and differs only in
// its Replay policy: what a subscriber attaching late is brought up to date
// with.
//
// # Variants
//
//   - JustComplete, Empty, JustError: emit at construction, then complete
//   - DelayedComplete, DelayedEmpty, DelayedError: emit once after a delay
//   - Emitter: replays the last value or the last error
//   - Subject: always holds a current value
//   - Buffer: replays the whole value/error history
//   - Operation: single-shot success/fail future
//   - Combine, From, WaitUntilComplete: combinators
//   - Entity, Value: UI-state cells
//
// # Usage
//
//	name := rx.NewSubject("guest")
//	sub := rx.Map(name.Pipe(), strings.ToUpper).
//	    RemoveDuplicatesFunc(func(a, b string) bool { return a == b }).
//	    OnReceive(func(s string) { fmt.Println("hello", s) }).
//	    Subscribe()
//	defer sub.Unsubscribe()
//
//	name.Send("alice")
//
// Delivery is synchronous on the caller's goroutine. Publishers are not safe
// for concurrent use; code that receives results from other goroutines posts
// them through a Loop.
//
// Delayed variants schedule on DefaultLoop unless given WithScheduler. The
// owner goroutine runs it:
//
//	go work(ctx)              // posts results with rx.DefaultLoop().Post
//	rx.DefaultLoop().Run(ctx) // delayed emissions fire here
package rx
