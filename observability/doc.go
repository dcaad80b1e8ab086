// Package observability wires OpenTelemetry tracing and metrics into flinker.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg.Tracing)
//	defer tp.Shutdown(ctx)
//
// Publisher metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg.Metrics)
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewRxMetrics(observability.Meter("flinker"))
//	rx.SetObserver(m)
//
// Command metrics are recorded by OperationContext, which the command package
// opens around every run.
package observability
