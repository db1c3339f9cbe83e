package gpu

import (
	"errors"
	"unsafe"
)

// ErrUnloaded is returned when mutating a Vector whose CPU copy was released.
// Mutation after UnloadFromRAM is an explicit error rather than a silent
// no-op or a device readback; callers that animate data must keep the mirror.
var ErrUnloaded = errors.New("gpu: vector has no CPU copy")

// ErrDirty is returned by UnloadFromRAM when pending changes have not been
// uploaded yet; Bind first.
var ErrDirty = errors.New("gpu: vector has unsynchronized changes")

// Vector is a typed buffer resident on the CPU, the device, or both.
// The device buffer is created lazily on first Bind; later Binds upload only
// when the data is dirty, reallocating only when the length outgrows the
// previously allocated device capacity.
type Vector[T any] struct {
	data    []T
	hasData bool

	handle    uint32
	deviceLen int // elements currently uploaded
	deviceCap int // elements allocated on the device
	dirty     bool

	target BufferTarget
	usage  Usage
}

// NewVector constructs a vector with CPU data only. No device allocation
// happens until the first Bind.
func NewVector[T any](data []T, target BufferTarget, usage Usage) *Vector[T] {
	return &Vector[T]{
		data:    data,
		hasData: true,
		dirty:   true,
		target:  target,
		usage:   usage,
	}
}

// Len returns the CPU-side length when present, else the last uploaded length.
func (v *Vector[T]) Len() int {
	if v.hasData {
		return len(v.data)
	}
	return v.deviceLen
}

// Handle returns the device buffer handle, 0 before the first Bind.
func (v *Vector[T]) Handle() uint32 {
	return v.handle
}

// IsOnGPU reports whether a device buffer exists.
func (v *Vector[T]) IsOnGPU() bool {
	return v.handle != 0
}

// Data returns the CPU-side storage for reading.
// ok is false when the copy was released via UnloadFromRAM.
func (v *Vector[T]) Data() (data []T, ok bool) {
	return v.data, v.hasData
}

// Mut returns the CPU-side storage for mutation and marks the vector dirty.
func (v *Vector[T]) Mut() ([]T, error) {
	if !v.hasData {
		return nil, ErrUnloaded
	}
	v.dirty = true
	return v.data, nil
}

// SetData replaces the CPU-side storage, restoring a released mirror.
func (v *Vector[T]) SetData(data []T) {
	v.data = data
	v.hasData = true
	v.dirty = true
}

// Push appends elements to the CPU-side storage.
func (v *Vector[T]) Push(elems ...T) error {
	if !v.hasData {
		return ErrUnloaded
	}
	v.data = append(v.data, elems...)
	v.dirty = true
	return nil
}

// Bind makes the device buffer current, creating and synchronizing it as
// needed. A full reallocation happens only when the CPU length exceeds the
// device capacity; the new allocation is sized to the CPU slice capacity to
// amortize future growth. Otherwise a sub-range update covers len() elements.
func (v *Vector[T]) Bind(b Backend) {
	if v.handle == 0 {
		v.handle = b.GenBuffer()
		v.deviceLen = 0
		v.deviceCap = 0
		if v.hasData {
			v.dirty = true
		}
	}
	b.BindBuffer(v.target, v.handle)

	if !v.dirty || !v.hasData {
		return
	}

	var elem T
	elemSize := int(unsafe.Sizeof(elem))

	if len(v.data) > v.deviceCap {
		n := cap(v.data)
		var ptr unsafe.Pointer
		if n > 0 {
			full := v.data[:cap(v.data)]
			ptr = unsafe.Pointer(&full[0])
		}
		b.BufferData(v.target, n*elemSize, ptr, v.usage)
		v.deviceCap = n
	} else if len(v.data) > 0 {
		b.BufferSubData(v.target, 0, len(v.data)*elemSize, unsafe.Pointer(&v.data[0]))
	}

	v.deviceLen = len(v.data)
	v.dirty = false
}

// Unbind exists for API symmetry with Bind; attribute streams stay bound
// until the next Bind, so there is nothing to undo.
func (v *Vector[T]) Unbind(b Backend) {}

// UnloadFromRAM releases the CPU copy. The device buffer must exist and be
// current, otherwise the data would be lost.
func (v *Vector[T]) UnloadFromRAM() error {
	if v.handle == 0 || v.dirty {
		return ErrDirty
	}
	v.data = nil
	v.hasData = false
	return nil
}

// Release frees the device buffer. The CPU copy, if any, is retained.
func (v *Vector[T]) Release(b Backend) {
	if v.handle != 0 {
		b.DeleteBuffer(v.handle)
		v.handle = 0
		v.deviceLen = 0
		v.deviceCap = 0
		if v.hasData {
			v.dirty = true
		}
	}
}
