/*
Package ports defines the boundary interfaces of the Proofline engine.

Following Hexagonal Architecture, the engine core (commands, proof model,
rewrite pipeline) depends only on these interfaces; concrete adapters
(in-memory, file, redis, HTTP) live in pkg/adapters and implement them.
*/
package ports
