// Package session ties the engine together: a Session owns the live graph,
// selection, undo stack and proof document for one proof, and a Manager
// serializes access to proofs held in a store.
package session
