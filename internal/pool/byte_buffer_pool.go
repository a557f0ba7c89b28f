package pool

import "sync"

const (
	// TableBufferDefaultSize is the initial capacity of pooled buffers.
	// Prediction tables are typically a few hundred rows of float64
	// columns, so 16KiB covers the common case without reallocation.
	TableBufferDefaultSize = 1024 * 16 // 16KiB
	// TableBufferMaxThreshold is the largest buffer returned to the pool.
	// Oversized buffers from pathological inputs are dropped instead of
	// pinning memory.
	TableBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a reusable byte slice wrapper with amortized growth.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures the buffer has capacity for at least n additional bytes.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}
	grown := make([]byte, len(bb.B), len(bb.B)+n)
	copy(grown, bb.B)
	bb.B = grown
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.B = append(bb.B, b)
}

var tableBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(TableBufferDefaultSize)
	},
}

// GetTableBuffer returns a reset ByteBuffer from the pool.
func GetTableBuffer() *ByteBuffer {
	buf, _ := tableBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutTableBuffer returns a ByteBuffer to the pool.
//
// Buffers that grew beyond TableBufferMaxThreshold are discarded so a
// single huge encode does not keep its memory alive forever.
func PutTableBuffer(buf *ByteBuffer) {
	if buf == nil || buf.Cap() > TableBufferMaxThreshold {
		return
	}
	tableBufferPool.Put(buf)
}
