// Package handle implements single ownership and shared references for
// native handles. Nothing here locks; handles are not shared across threads.
package handle

import (
	"errors"

	"sfbind/internal/native"
)

// ErrReleased is the panic value for using a handle after its release.
var ErrReleased = errors.New("handle: use of released native handle")

// ReleaseFunc destroys a native handle.
type ReleaseFunc func(native.Handle)

// Owned holds exactly one native handle and releases it at most once.
// Copying an Owned duplicates ownership; keep it behind a pointer.
type Owned struct {
	h       native.Handle
	release ReleaseFunc
}

// Wrap takes ownership of h. The factory that produced h is responsible for
// rejecting the null handle.
func Wrap(h native.Handle, release ReleaseFunc) Owned {
	return Owned{h: h, release: release}
}

// Unwrap borrows the handle for a native call. The caller must not destroy it.
func (o *Owned) Unwrap() native.Handle {
	if o.h.IsNull() {
		panic(ErrReleased)
	}
	return o.h
}

// Live reports whether the handle has not been released yet.
func (o *Owned) Live() bool { return !o.h.IsNull() }

// Release destroys the handle. It returns false if there was nothing to release.
func (o *Owned) Release() bool {
	if o.h.IsNull() {
		return false
	}
	h := o.h
	o.h = native.Null
	if o.release != nil {
		o.release(h)
	}
	return true
}

// Shared is a reference-counted Owned. The native handle is released when
// the last reference goes away.
type Shared struct {
	owned Owned
	refs  int
}

// NewShared takes ownership of h with one reference held by the caller.
func NewShared(h native.Handle, release ReleaseFunc) *Shared {
	return &Shared{owned: Wrap(h, release), refs: 1}
}

// Retain adds a reference.
func (s *Shared) Retain() {
	if s.refs == 0 {
		panic(ErrReleased)
	}
	s.refs++
}

// Release drops a reference and reports whether it was the last one.
func (s *Shared) Release() bool {
	if s.refs == 0 {
		return false
	}
	s.refs--
	if s.refs > 0 {
		return false
	}
	return s.owned.Release()
}

// Refs returns the number of live references.
func (s *Shared) Refs() int { return s.refs }

// Unwrap borrows the handle.
func (s *Shared) Unwrap() native.Handle { return s.owned.Unwrap() }

// Live reports whether the native handle still exists.
func (s *Shared) Live() bool { return s.owned.Live() }
