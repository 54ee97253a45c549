/*
Package proof implements the linear proof history: an initial graph plus
an ordered log of named rewrite steps, each owning the graph it produced.

The sequence of graphs is [initial, steps[0].Graph, ..., steps[n-1].Graph],
and steps[i].Graph is reachable from its predecessor by exactly the named
transformation. The current position within the proof is an external
cursor (see ports.StepCursor); the document itself has no notion of "now".
*/
package proof
