package generator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBufferPool_TieredSizes(t *testing.T) {
	small := getRenderBuffer(1)
	assert.GreaterOrEqual(t, small.Cap(), smallBufferSize)
	putRenderBuffer(small, 1)

	medium := getRenderBuffer(20)
	assert.GreaterOrEqual(t, medium.Cap(), mediumBufferSize)
	putRenderBuffer(medium, 20)

	large := getRenderBuffer(100)
	assert.GreaterOrEqual(t, large.Cap(), largeBufferSize)
	putRenderBuffer(large, 100)
}

func TestRenderBufferPool_ResetOnGet(t *testing.T) {
	buf := getRenderBuffer(1)
	buf.WriteString("package stale\n")
	putRenderBuffer(buf, 1)

	again := getRenderBuffer(1)
	assert.Zero(t, again.Len())
	putRenderBuffer(again, 1)
}

func TestRenderBufferPool_DropsOversized(t *testing.T) {
	assert.NotPanics(t, func() {
		putRenderBuffer(nil, 1)
		putRenderBuffer(bytes.NewBuffer(make([]byte, 0, maxPooledBufferSize+1)), 1)
	})
}

func BenchmarkRenderBuffer_WithPool(b *testing.B) {
	for b.Loop() {
		buf := getRenderBuffer(12)
		buf.WriteString("package client\n")
		putRenderBuffer(buf, 12)
	}
}
