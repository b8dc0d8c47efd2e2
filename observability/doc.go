// Package observability wires OpenTelemetry tracing and metrics into
// sequence traversals.
//
// Setup:
//
//	tcfg := observability.DefaultTracerConfig("seqdemo")
//	tp, err := observability.InitTracer(ctx, &tcfg)
//	defer tp.Shutdown(ctx)
//
//	mcfg := observability.DefaultMeterConfig("seqdemo")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
// Instrumenting a sequence:
//
//	metrics, err := observability.NewMetrics(observability.Meter("seqdemo"))
//	evens := observability.Instrument(seq.FromSlice(ids).Filter(isEven), "evens", metrics)
//	n, err := evens.Count()
//
// Every traversal opens a "sequence.traversal" span that ends when the
// cursor is exhausted, fails, or is closed early. Instrumentation is lazy:
// building the sequence records nothing.
package observability
