package bptree

import "errors"

// ErrDuplicateKey is returned by Add and Appender.AddOrdered when the key
// already exists.
var ErrDuplicateKey = errors.New("bptree: duplicate key")

// ErrNotFound is returned by Get, Remove, and UpdateValue for a missing key.
var ErrNotFound = errors.New("bptree: not found")

// ErrOutOfOrder is returned by Appender.AddOrdered when the key is less
// than the appender's current maximum (an equal key is ErrDuplicateKey).
var ErrOutOfOrder = errors.New("bptree: out of order")

// ErrInvalidArgument is returned by New when itemsPerNode is explicitly
// given as a non-negative value below the required minimum of 5.
var ErrInvalidArgument = errors.New("bptree: invalid argument")
