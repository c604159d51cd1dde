// Package network mirrors the native layer's socket status codes.
package network

import (
	"errors"
	"io"
	"net"
	"syscall"

	"sfbind/internal/native"
)

// SocketStatus is a status code returned by socket operations. The values
// are assigned from the native constants.
type SocketStatus int32

const (
	// SocketNone means the socket has sent or received the data.
	SocketNone = SocketStatus(native.SocketDone)
	// SocketNotReady means the socket is not ready to send or receive yet.
	SocketNotReady = SocketStatus(native.SocketNotReady)
	// SocketDisconnected means the TCP socket has been disconnected.
	SocketDisconnected = SocketStatus(native.SocketDisconnected)
	// SocketError means an unexpected error happened.
	SocketError = SocketStatus(native.SocketError)
)

func (s SocketStatus) String() string {
	switch s {
	case SocketNone:
		return "done"
	case SocketNotReady:
		return "not ready"
	case SocketDisconnected:
		return "disconnected"
	case SocketError:
		return "error"
	}
	return "SocketStatus(?)"
}

// StatusOf classifies the error of a Go socket operation.
func StatusOf(err error) SocketStatus {
	if err == nil {
		return SocketNone
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return SocketNotReady
	}

	switch {
	case errors.Is(err, syscall.EAGAIN):
		return SocketNotReady
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE):
		return SocketDisconnected
	}
	return SocketError
}
