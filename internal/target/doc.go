// Package target defines the output model: Java-shaped declarations
// produced by the mappers and consumed by the emitter.
//
// Declarations are created by the mapper package and never mutated
// afterwards.
package target
