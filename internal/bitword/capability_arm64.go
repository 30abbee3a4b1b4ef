//go:build arm64

package bitword

import "golang.org/x/sys/cpu"

func init() {
	// CNT is part of ASIMD.
	hasPopcount = cpu.ARM64.HasASIMD
	initCapabilities()
}
