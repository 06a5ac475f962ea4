package avltree

import "errors"

// ErrDuplicateKey is returned by Add when the key already exists in the tree.
var ErrDuplicateKey = errors.New("avltree: duplicate key")

// ErrNotFound is returned by Get, Minimum, and Maximum when no matching key
// (or no node at all) exists.
var ErrNotFound = errors.New("avltree: not found")
