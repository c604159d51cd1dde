// Package native is the boundary between the wrapper packages and the
// native multimedia layer.
//
// Every method on Driver maps to exactly one native entry point. Values that
// cross the boundary use the native representation: handles are opaque
// pointer-sized integers, booleans are the two sentinels True and False, text
// is NUL-terminated and absent text is the nil Str, never an empty one.
package native

import (
	"bytes"
	"errors"
)

var (
	ErrEmbeddedNUL = errors.New("native: text contains an embedded NUL byte")
	ErrNoDriver    = errors.New("native: no driver installed")
)

// Handle is an opaque reference to a native resource. Zero is the null handle.
type Handle uintptr

// Null is the handle native factories return on failure.
const Null Handle = 0

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == Null }

// Bool is the native boolean. Only True and False are valid.
type Bool int32

const (
	False Bool = 0
	True  Bool = 1
)

// BoolOf converts a Go bool to its native sentinel.
func BoolOf(b bool) Bool {
	if b {
		return True
	}
	return False
}

// Go converts the sentinel to a Go bool. Any other value means the native
// layer broke its contract, so it panics.
func (b Bool) Go() bool {
	switch b {
	case True:
		return true
	case False:
		return false
	}
	panic("native: invalid boolean sentinel")
}

// Str is NUL-terminated text handed to the native layer. A nil Str is the
// null pointer.
type Str []byte

// CStr converts s to native text.
func CStr(s string) (Str, error) {
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	out := make(Str, len(s)+1)
	copy(out, s)
	return out, nil
}

// OptStr converts an optional string. nil maps to the null Str.
func OptStr(s *string) (Str, error) {
	if s == nil {
		return nil, nil
	}
	return CStr(*s)
}

// IsNull reports whether s is the null pointer.
func (s Str) IsNull() bool { return s == nil }

// String returns the text without its terminator.
func (s Str) String() string {
	if len(s) == 0 {
		return ""
	}
	return string(s[:len(s)-1])
}

// VideoMode is the native display-mode triplet. Field order and widths match
// the native struct.
type VideoMode struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint32
}

// Socket status codes as the native layer defines them.
const (
	SocketDone         int32 = 0
	SocketNotReady     int32 = 1
	SocketDisconnected int32 = 2
	SocketError        int32 = 3
)
