// Package role implements the per-marker role assignment state machine.
//
// The concrete alleles that make up AA, Aa and aa differ per marker and are
// not known before the data is read. An Assigner discovers them in order of
// first observation: homozygous codes fill the AA slot and then the aa slot,
// the heterozygous code fills the Aa slot. Transitions are listed in an
// explicit table keyed by (State, Event).
//
// The outcome is packed into a 16-bit Header:
//
//	bits  0-3   code in the AA slot
//	bits  4-7   code in the Aa slot
//	bits  8-11  code in the aa slot
//	bits 12-14  State
package role
