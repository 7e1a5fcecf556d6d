package kvgate

import "errors"

var (
	// ErrNotFound is returned when the key is absent from the store.
	// It is a normal lookup outcome, not a failure.
	ErrNotFound = errors.New("not found")
	// ErrMethodNotAllowed is returned for any method other than GET or HEAD
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrBodyDiscard is returned when the request body could not be drained
	ErrBodyDiscard = errors.New("discard request body")
	// ErrPathTooLong is returned when the request path meets or exceeds the path length cap
	ErrPathTooLong = errors.New("path too long")
	// ErrStoreOpen is returned when the store file cannot be opened read-only
	ErrStoreOpen = errors.New("open store")
	// ErrStoreRead is returned when the store fails during a read transaction
	ErrStoreRead = errors.New("read store")
	// ErrAllocation is returned when the response buffer cannot be allocated
	ErrAllocation = errors.New("allocate response buffer")
)
