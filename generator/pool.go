package generator

import (
	"bytes"
	"sync"
)

// Buffer tiers by call count. A rendered call is roughly 600 bytes.
const (
	smallBufferSize  = 4 * 1024  // fewer than 8 calls
	mediumBufferSize = 16 * 1024 // fewer than 32 calls
	largeBufferSize  = 64 * 1024

	smallCallLimit  = 8
	mediumCallLimit = 32

	maxPooledBufferSize = 1 << 20
)

var bufferPools = [...]*sync.Pool{
	{New: func() any { return bytes.NewBuffer(make([]byte, 0, smallBufferSize)) }},
	{New: func() any { return bytes.NewBuffer(make([]byte, 0, mediumBufferSize)) }},
	{New: func() any { return bytes.NewBuffer(make([]byte, 0, largeBufferSize)) }},
}

func poolFor(callCount int) *sync.Pool {
	switch {
	case callCount < smallCallLimit:
		return bufferPools[0]
	case callCount < mediumCallLimit:
		return bufferPools[1]
	default:
		return bufferPools[2]
	}
}

// getRenderBuffer returns an empty buffer sized for callCount calls.
func getRenderBuffer(callCount int) *bytes.Buffer {
	buf := poolFor(callCount).Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putRenderBuffer returns buf to its pool. Oversized buffers are dropped.
func putRenderBuffer(buf *bytes.Buffer, callCount int) {
	if buf == nil || buf.Cap() > maxPooledBufferSize {
		return
	}
	poolFor(callCount).Put(buf)
}
