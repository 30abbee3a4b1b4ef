// Package bitword provides the machine-word abstraction used by the genotype
// bit-planes and case/control masks.
//
// # Word Width
//
// Word is uint64 by default. Build with -tags episcan_word32 or
// -tags episcan_word16 to select narrower words; every plane, mask and scan
// kernel is written once against Word, Bits and PopCount.
//
// # Kernels
//
// Slice kernels (Count, AndCount, And, AndNot) are dispatched through
// function pointers chosen at init:
//
//   - hardware: math/bits population count (POPCNT/CNT when the CPU has it)
//   - table: portable byte-table population count
//
// Runtime CPU feature detection selects the kernel. Set EPISCAN_POPCNT=table
// or EPISCAN_POPCNT=hardware to override.
package bitword
