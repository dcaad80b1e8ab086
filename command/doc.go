// Package command runs blocking work off the owner goroutine and delivers
// the outcome as an rx.Operation resolved on the owner's rx.Loop.
//
// Every run gets a request ID, a trace span, command metrics and log lines,
// and passes through the runner's retry policy, circuit breaker and
// bulkhead:
//
//	runner := command.NewRunner(loop, cfg.Commands, command.WithServiceName(cfg.Name))
//
//	cmd := command.New(runner, "load-books", func(ctx context.Context) ([]Book, error) {
//	    return api.LoadBooks(ctx, author)
//	})
//	cmd.Run(ctx).Pipe().OnReceive(repo.SetBooks).Subscribe()
//
// Run, Cancel and every subscriber callback belong to the loop goroutine.
package command
