// Package gpu provides the buffer abstraction that keeps CPU-side mesh data
// and OpenGL device buffers in sync. All GL traffic goes through the Backend
// interface so buffer bookkeeping is testable without a live context.
package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// BufferTarget selects the GL binding point for a buffer.
type BufferTarget uint32

const (
	// ArrayBuffer holds per-vertex attribute data.
	ArrayBuffer BufferTarget = gl.ARRAY_BUFFER
	// ElementArrayBuffer holds triangle indices.
	ElementArrayBuffer BufferTarget = gl.ELEMENT_ARRAY_BUFFER
)

// Usage is the allocation hint passed to the driver.
type Usage uint32

const (
	StaticDraw  Usage = gl.STATIC_DRAW
	DynamicDraw Usage = gl.DYNAMIC_DRAW
	StreamDraw  Usage = gl.STREAM_DRAW
)

// Backend is the device-buffer interface. GLBackend talks to OpenGL;
// tests substitute a recording fake.
type Backend interface {
	GenBuffer() uint32
	BindBuffer(target BufferTarget, handle uint32)
	BufferData(target BufferTarget, size int, data unsafe.Pointer, usage Usage)
	BufferSubData(target BufferTarget, offset, size int, data unsafe.Pointer)
	DeleteBuffer(handle uint32)
}

// glBackend issues real OpenGL calls. Requires a current GL context.
type glBackend struct{}

// GL is the OpenGL backend used by the renderer.
var GL Backend = glBackend{}

func (glBackend) GenBuffer() uint32 {
	var handle uint32
	gl.GenBuffers(1, &handle)
	return handle
}

func (glBackend) BindBuffer(target BufferTarget, handle uint32) {
	gl.BindBuffer(uint32(target), handle)
}

func (glBackend) BufferData(target BufferTarget, size int, data unsafe.Pointer, usage Usage) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
	Verify()
}

func (glBackend) BufferSubData(target BufferTarget, offset, size int, data unsafe.Pointer) {
	gl.BufferSubData(uint32(target), offset, size, data)
	Verify()
}

func (glBackend) DeleteBuffer(handle uint32) {
	gl.DeleteBuffers(1, &handle)
}
