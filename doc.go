/*
Package proofline is an undo/redo command engine for ZX-calculus diagram
proofs.

A proof is an ordered log of rewrite steps anchored at an initial diagram.
Every edit runs as a reversible command over a private graph copy, so undo
always restores the exact prior state, and rewrites append named steps
that can be navigated, renamed and persisted.

The library is organized hexagonally: pkg/domain holds the graph model,
pkg/command the edit commands and undo stack, pkg/proof the step log,
pkg/rewrite the matcher/rule pipeline and catalog, and pkg/adapters the
memory, file, Redis and HTTP adapters. Package session ties them together
behind the Engine facade:

	eng, err := proofline.New()
	if err != nil {
		log.Fatal(err)
	}
	s, err := eng.Open(ctx, "my-proof")
	if err != nil {
		log.Fatal(err)
	}
	s.AddNode(0, 0, domain.VertexZ)
	s.Undo()
*/
package proofline
