package domain

import "errors"

// ErrVertexExists is returned when reintroducing a vertex ID that is still present.
var ErrVertexExists = errors.New("vertex already exists")

// ErrVertexNotFound is returned when a referenced vertex is absent.
var ErrVertexNotFound = errors.New("vertex not found")

// ErrProofNotFound is returned when a proof ID cannot be found in the store.
var ErrProofNotFound = errors.New("proof not found")
