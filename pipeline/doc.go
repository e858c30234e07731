// Package pipeline implements parzip's chunked parallel compression and
// decompression pipeline.
//
// Both directions share one shape: a producer reads the source sequentially,
// slices it into chunks, assigns each chunk a monotonically increasing index,
// and submits it to a fixed pool of workers. Workers run the codec and
// publish results into a completed collection keyed by chunk index. A writer
// drains that collection in strict ascending index order and appends to the
// output.
//
// # Ordering
//
// For any two chunks i < j, chunk i's bytes are fully written before chunk
// j's, regardless of which worker finishes first. The container format
// depends on this: frames carry no index, so out-of-order frames would be
// silently misread as a different partition of the data.
//
// # Resource bounds
//
// Submission applies backpressure: once the pending queue reaches its
// configured depth, Submit blocks until a worker dequeues. Memory in flight
// is therefore O(queue depth × chunk size) rather than O(file size). The
// writer's wait for the next expected index is event-driven (a condition
// broadcast on every publish), not a polling loop.
//
// # Failure
//
// A worker never lets an error escape its goroutine: the first failure is
// captured into the pool's error slot, intake stops, and queued work is
// abandoned. Producer and writer observe the captured error on their next
// pool interaction and abort, leaving the output file in a partial state
// that callers must discard. A quiescent pool that still owes the writer a
// chunk reports errs.ErrPipelineStalled, which is an invariant violation and
// is never retried.
//
// Cancellation is cooperative: the drivers watch their context and fail the
// pool when it is cancelled, so workers and a backpressured producer unblock
// promptly instead of draining the remaining input.
package pipeline
