/*
Package command implements the undoable mutation units of the Proofline
engine and the stack that sequences them.

Every command owns a private deep copy of the graph it mutates, taken at
construction time, so commands never alias each other's state. Redo
applies the forward mutation and captures whatever the matching Undo needs
to restore the exact prior graph; both end by notifying the view.

A command is a two-state machine: Pending (never executed) and Applied
(captured undo state present). Calling Undo on a Pending command is a
programming-contract violation and panics; the stack guarantees Redo runs
first.
*/
package command
