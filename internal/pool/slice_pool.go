package pool

import "sync"

// byteSlicePool reuses chunk-sized byte slices across pipeline iterations.
// The producer acquires one buffer per chunk and the worker that consumes
// the chunk releases it, so steady-state allocation is bounded by the
// number of chunks in flight rather than the file size.
var byteSlicePool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// GetByteSlice retrieves and resizes a byte slice from the pool.
//
// The returned slice has the exact length specified by the size parameter.
// If the pooled slice has insufficient capacity, a new slice is allocated.
// The caller must call the returned cleanup function to return the slice to
// the pool once the buffer's contents are no longer referenced.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []byte: A slice with length equal to size
//   - func(): Cleanup function that returns the slice to the pool
//
// Example:
//
//	buf, release := pool.GetByteSlice(chunkSize)
//	// fill and hand off buf; the consumer calls release()
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { byteSlicePool.Put(ptr) }
}
