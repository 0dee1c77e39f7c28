// Package pet implements the deterministic simulation core of the desktop pet.
//
// The core is a pure, time-stepped transition function: Simulator.Update takes
// the previous State, the elapsed time, a batch of input events and the
// current screen bounds, and returns the next State together with the
// side-effecting actions the host must perform. Nothing in this package does
// I/O, reads the clock, or draws; randomness comes from an injected source.
//
// Per tick the orchestrator runs, strictly in order: event handling,
// animation-completion handling, the idle timer, movement, the sleep timer
// and finally frame animation.
package pet
