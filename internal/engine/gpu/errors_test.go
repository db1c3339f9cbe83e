package gpu

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// stubErrors feeds a queue of GL error codes through getError, ending
// with NO_ERROR.
func stubErrors(t *testing.T, codes ...uint32) {
	t.Helper()
	prev := getError
	t.Cleanup(func() { getError = prev })
	getError = func() uint32 {
		if len(codes) == 0 {
			return gl.NO_ERROR
		}
		code := codes[0]
		codes = codes[1:]
		return code
	}
}

func TestVerifyCleanFlag(t *testing.T) {
	stubErrors(t)
	Verify()
}

func TestVerifyPanicsOnPendingError(t *testing.T) {
	stubErrors(t, gl.INVALID_OPERATION)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Verify did not panic with a pending error")
		}
		err, ok := r.(Error)
		if !ok {
			t.Fatalf("Verify panicked with %T, want Error", r)
		}
		if err.Error() != "gl: invalid operation" {
			t.Errorf("unexpected message %q", err.Error())
		}
	}()
	Verify()
}

func TestIgnoreDrainsAllPending(t *testing.T) {
	stubErrors(t, gl.INVALID_ENUM, gl.INVALID_VALUE, gl.OUT_OF_MEMORY)
	Ignore()

	// The flag must be clean afterwards.
	if err := Check(); err != nil {
		t.Errorf("flag still set after Ignore: %v", err)
	}
}

func TestCheckReturnsPendingError(t *testing.T) {
	stubErrors(t, gl.OUT_OF_MEMORY)

	err := Check()
	if err == nil {
		t.Fatal("Check returned nil with a pending error")
	}
	var glErr Error
	if !errors.As(err, &glErr) {
		t.Fatalf("Check returned %T, want Error", err)
	}
	if err.Error() != "gl: out of memory" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if err := Check(); err != nil {
		t.Errorf("Check did not consume the flag: %v", err)
	}
}

func TestErrorStringUnknownCode(t *testing.T) {
	if got := Error(0x9999).Error(); got != "gl: error 0x9999" {
		t.Errorf("unexpected message %q", got)
	}
}
