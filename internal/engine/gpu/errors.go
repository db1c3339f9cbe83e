package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Error is a GL error code surfaced through the Check policy.
type Error uint32

func (e Error) Error() string {
	switch uint32(e) {
	case gl.INVALID_ENUM:
		return "gl: invalid enum"
	case gl.INVALID_VALUE:
		return "gl: invalid value"
	case gl.INVALID_OPERATION:
		return "gl: invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "gl: invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "gl: out of memory"
	default:
		return fmt.Sprintf("gl: error 0x%04x", uint32(e))
	}
}

// getError reads the GL error flag. Tests substitute it; there is no
// flag to read without a live context.
var getError func() uint32 = gl.GetError

// Three-tier error policy, chosen per call site:
//
//	Verify: any pending GL error is a bug, abort.
//	Ignore: drain and discard pending errors.
//	Check:  convert a pending error into a value the caller can branch on,
//	        for call sites probing optional capabilities.

// Verify panics if the GL error flag is set.
func Verify() {
	if code := getError(); code != gl.NO_ERROR {
		panic(Error(code))
	}
}

// Ignore drains any pending GL errors.
func Ignore() {
	for getError() != gl.NO_ERROR {
	}
}

// Check returns the pending GL error, or nil if none occurred.
func Check() error {
	if code := getError(); code != gl.NO_ERROR {
		return Error(code)
	}
	return nil
}
