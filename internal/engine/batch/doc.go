// Package batch applies the Base62 codec across large ordered collections in parallel.
//
// Key properties:
//   - Admission control: a batch longer than the configured maximum (default
//     1,000,000 elements) is rejected with failure.BatchTooLargeError before
//     any result buffer is allocated or any worker is started
//   - Order stability: element i of the output always corresponds to element
//     i of the input; workers write into disjoint, pre-sized result slots
//   - Deterministic errors: DecodeBatch records every element outcome, waits
//     for all workers, then scans once in index order, so the reported
//     failure is always the lowest failing index
//   - All-or-nothing: a failed DecodeBatch returns no values
//
// Work is split into contiguous chunks (default 4096 elements) and run on an
// errgroup bounded by the worker limit (default GOMAXPROCS).
package batch
