package store

import (
	"fmt"
	"strings"
)

// Kind selects the in-memory encoding of a Store.
type Kind uint8

const (
	// BitPlane stores two one-bit planes per row. It is the default.
	BitPlane Kind = iota
	// Packed2 stores a 2-bit role per cell.
	Packed2
	// Packed4 stores the raw 4-bit allele code per cell.
	Packed4
)

func (k Kind) String() string {
	switch k {
	case BitPlane:
		return "bitplane"
	case Packed2:
		return "packed2"
	case Packed4:
		return "packed4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses an encoding name as printed by Kind.String.
// Bit widths ("1", "2", "4") are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bitplane", "1", "1bit":
		return BitPlane, nil
	case "packed2", "2", "2bit":
		return Packed2, nil
	case "packed4", "4", "4bit":
		return Packed4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
