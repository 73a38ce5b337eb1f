package object

import "errors"

var (
	// ErrObjectNotFound means no object file exists for the requested hash.
	ErrObjectNotFound = errors.New("object not found")

	// ErrCorruptObject means an object file exists but could not be
	// decompressed, or its header is malformed or disagrees with the payload.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrInvalidArgument means the caller supplied something malformed: a bad
	// object name, a tree payload that breaks the entry grammar, or an object
	// of the wrong kind.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO wraps environmental filesystem failures.
	ErrIO = errors.New("i/o failure")
)
