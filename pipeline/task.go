package pipeline

// Task is one chunk's unit of work flowing through the worker pool.
//
// A task is owned by exactly one goroutine at a time: the producer until
// submission, the worker that dequeues it, the completed collection after
// publication, and finally the writer that consumes the result. The queue
// and collection hand-offs are the only synchronization; no task field is
// ever accessed concurrently.
type Task struct {
	// Index is the chunk's position in the original byte stream, assigned
	// by the producer in strictly increasing order starting at 0.
	Index uint64

	// Input is the chunk's source bytes: raw file data when compressing,
	// one frame payload when decompressing. Immutable after creation.
	Input []byte

	// Output holds the codec's result, written exactly once by the worker
	// that processes the task.
	Output []byte

	// release returns Input's buffer to the slice pool once the codec has
	// consumed it. Nil when the buffer is not pooled.
	release func()
}

// aliases reports whether out shares its backing array start with in, which
// happens when a pass-through codec returns its input unchanged. An aliased
// input buffer must not be recycled while the output is still pending.
func aliases(out, in []byte) bool {
	return len(out) > 0 && len(in) > 0 && &out[0] == &in[0]
}
