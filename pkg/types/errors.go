package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Operation errors.
var (
	ErrNotFound        = errors.New("post not found")
	ErrInvalidID       = errors.New("invalid post ID")
	ErrUnauthenticated = errors.New("no authenticated identity")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrUnknownProvider = errors.New("unknown social login provider")
)
