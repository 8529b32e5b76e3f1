// Package resolve turns a rocket design into concrete numbers: automatic
// radii, absolute axial positions, and mass properties.
//
// Resolution is a fixed three-phase pass over the component arena. Phase one
// infers automatic radii from adjoining components, phase two assigns every
// component an absolute axial span, phase three derives per-component masses
// and aggregates whole-rocket mass, center of gravity, and moments of
// inertia. The design itself is never mutated; all results land in a
// read-only Snapshot. There is no partial success: resolution either covers
// the whole tree or fails naming the offending component.
//
// Every pass iterates the arena in index order with a fixed sequence of
// floating-point operations, so identical inputs produce bit-identical
// outputs.
package resolve
