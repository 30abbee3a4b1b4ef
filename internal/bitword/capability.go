package bitword

import (
	"os"
	"strings"
)

// Kernel identifies a population-count implementation.
type Kernel uint8

const (
	// Native uses math/bits, which lowers to POPCNT/CNT where available.
	Native Kernel = iota
	// Table uses a 256-entry byte lookup table.
	Table
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Native:
		return "native"
	case Table:
		return "table"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "hardware":
		return Native, true
	case "table":
		return Table, true
	default:
		return Native, false
	}
}

// Package-level state, initialized once at package init.
var (
	activeKernel Kernel
	hasOverride  bool

	// set by platform-specific init
	hasPopcount bool
)

func initCapabilities() {
	if override := os.Getenv("EPISCAN_POPCNT"); override != "" {
		if k, ok := ParseKernel(override); ok {
			hasOverride = true
			useKernel(k)
			return
		}
	}

	if hasPopcount {
		useKernel(Native)
	} else {
		useKernel(Table)
	}
}

func useKernel(k Kernel) {
	activeKernel = k
	switch k {
	case Table:
		kernelCount = countTable
		kernelAndCount = andCountTable
	default:
		kernelCount = countNative
		kernelAndCount = andCountNative
	}
}

// ActiveKernel returns the kernel selected at init.
func ActiveKernel() Kernel {
	return activeKernel
}

// IsOverridden reports whether EPISCAN_POPCNT selected the kernel.
func IsOverridden() bool {
	return hasOverride
}

// HasHardwarePopcount reports whether the CPU advertises a population-count
// instruction.
func HasHardwarePopcount() bool {
	return hasPopcount
}
