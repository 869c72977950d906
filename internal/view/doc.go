// Package view defines the component tree model and the engine that expands
// declarative specs into concrete trees.
//
// Rendering is allowed to fail by panicking: component constructors raise,
// the engine annotates the panic with the component chain as the stack
// unwinds, and a boundary at the root of the tree decides what the user
// sees instead. The engine itself never recovers, it only annotates.
package view
