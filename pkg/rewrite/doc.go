/*
Package rewrite implements the rewrite pipeline and the hierarchical
catalog of named rewrite actions.

An Action pairs a matcher (which finds applicable matches among the
selected vertices or edges) with a rule (which transforms the graph). The
catalog is a tree built from a nested mapping: a node is a leaf iff it has
the recognized action shape, otherwise every key is a child group. Leaf
enabled state is recomputed from the current selection; interior nodes are
always enabled.
*/
package rewrite
