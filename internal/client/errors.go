package client

import "errors"

var (
	// ErrAuthentication means the server rejected the credentials or did
	// not hand out a session.
	ErrAuthentication = errors.New("authentication failed")
	// ErrTransport covers network failures, non-2xx responses and bodies
	// that cannot be decoded.
	ErrTransport = errors.New("transport failure")
)
