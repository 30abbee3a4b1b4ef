package role

import "github.com/hupe1980/episcan/genotype"

// State records which role slots of a marker are filled.
type State uint8

const (
	// Empty: no non-missing code seen.
	Empty State = iota
	// OneHomozygote: AA filled.
	OneHomozygote
	// Heterozygote: Aa filled.
	Heterozygote
	// HomozygoteHeterozygote: AA and Aa filled.
	HomozygoteHeterozygote
	// TwoHomozygotes: AA and aa filled.
	TwoHomozygotes
	// Complete: all three slots filled.
	Complete

	numStates
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case OneHomozygote:
		return "one-homozygote"
	case Heterozygote:
		return "heterozygote"
	case HomozygoteHeterozygote:
		return "homozygote-heterozygote"
	case TwoHomozygotes:
		return "two-homozygotes"
	case Complete:
		return "complete"
	default:
		return "invalid"
	}
}

// Distinct returns the number of distinct codes assigned in state s.
func (s State) Distinct() int {
	switch s {
	case Empty:
		return 0
	case OneHomozygote, Heterozygote:
		return 1
	case HomozygoteHeterozygote, TwoHomozygotes:
		return 2
	case Complete:
		return 3
	default:
		return 0
	}
}

// Event classifies a newly observed distinct code.
type Event uint8

const (
	// NewHomozygote is a first occurrence of a homozygous code.
	NewHomozygote Event = iota
	// NewHeterozygote is a first occurrence of a heterozygous code.
	NewHeterozygote

	numEvents
)

func (e Event) String() string {
	if e == NewHomozygote {
		return "new-homozygote"
	}
	return "new-heterozygote"
}

// transition is one cell of the state table. A zero slot marks a rejected
// event; err names the reason.
type transition struct {
	next State
	slot genotype.Genotype
	err  error
}

var transitions = [numStates][numEvents]transition{
	Empty: {
		NewHomozygote:   {next: OneHomozygote, slot: genotype.HomMajor},
		NewHeterozygote: {next: Heterozygote, slot: genotype.Het},
	},
	OneHomozygote: {
		NewHomozygote:   {next: TwoHomozygotes, slot: genotype.HomMinor},
		NewHeterozygote: {next: HomozygoteHeterozygote, slot: genotype.Het},
	},
	Heterozygote: {
		NewHomozygote:   {next: HomozygoteHeterozygote, slot: genotype.HomMajor},
		NewHeterozygote: {err: ErrSecondHeterozygote},
	},
	HomozygoteHeterozygote: {
		NewHomozygote:   {next: Complete, slot: genotype.HomMinor},
		NewHeterozygote: {err: ErrSecondHeterozygote},
	},
	TwoHomozygotes: {
		NewHomozygote:   {err: ErrThirdHomozygote},
		NewHeterozygote: {next: Complete, slot: genotype.Het},
	},
	Complete: {
		NewHomozygote:   {err: ErrTooManyCodes},
		NewHeterozygote: {err: ErrTooManyCodes},
	},
}

// Next returns the state and slot reached from s on e.
func Next(s State, e Event) (State, genotype.Genotype, error) {
	if s >= numStates || e >= numEvents {
		return s, genotype.Missing, ErrInvalidHeader
	}
	t := transitions[s][e]
	if t.err != nil {
		return s, genotype.Missing, t.err
	}
	return t.next, t.slot, nil
}
