/*
Package domain contains the core graph model for the Proofline engine.

It defines the attributed multigraph that every command and proof step
operates on: vertices carrying a kind, a phase or box label, and a 2D
position, and typed edges between them. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Graph: The mutable attributed multigraph (at most one edge per vertex pair).
  - VertexData: Kind, phase-or-label, and position of a single vertex.
  - Edge: An unordered pair of vertex IDs.
  - GraphDiff: A serializable patch between two graphs.
*/
package domain
