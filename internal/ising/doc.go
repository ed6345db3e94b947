// Package ising provides the core primitives of the 2D Ising model on a
// periodic square lattice.
//
// The package defines the data types shared by every update engine:
//
//   - [Lattice]: L×L spins in {-1, +1}, row-major, toroidal wrap
//   - [Source]: seeded deterministic random stream
//   - [Energy] and [Magnetization]: observables recomputed from lattice content
//   - [Checkerboard]: two-colouring of an even lattice
//   - [AcceptanceTable]: Metropolis probabilities for the ten (n, σ) cases
//
// # Lattice memory
//
// A Lattice never reallocates its spin buffer. [Lattice.Spins] hands out a
// borrowed view of that buffer so compute backends can mutate it in place; the
// view stays valid for as long as the Lattice is alive. There is no resize
// operation.
//
// # Thread Safety
//
// Lattice and Source are NOT thread-safe. Independent simulations must use
// separate instances.
package ising
