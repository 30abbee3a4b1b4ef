package loader

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Status is a PLINK affection status.
type Status int8

const (
	// StatusMissing marks an individual without a phenotype.
	StatusMissing Status = iota
	// StatusControl marks an unaffected individual.
	StatusControl
	// StatusCase marks an affected individual.
	StatusCase
)

func (s Status) String() string {
	switch s {
	case StatusControl:
		return "control"
	case StatusCase:
		return "case"
	default:
		return "missing"
	}
}

// ParseStatus parses PLINK affection coding: 1 control, 2 case, and 0, -9
// or NA missing.
func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(s) {
	case "2":
		return StatusCase, nil
	case "1":
		return StatusControl, nil
	case "0", "-9", "NA", "na":
		return StatusMissing, nil
	default:
		return StatusMissing, fmt.Errorf("%w: %q", ErrStatus, s)
	}
}

// Phenotypes partitions individuals by status, in file order.
type Phenotypes struct {
	Cases    []string `json:"cases"`
	Controls []string `json:"controls"`
	Missing  []string `json:"missing,omitempty"`
}

// Add records id under status.
func (p *Phenotypes) Add(id string, s Status) {
	switch s {
	case StatusCase:
		p.Cases = append(p.Cases, id)
	case StatusControl:
		p.Controls = append(p.Controls, id)
	default:
		p.Missing = append(p.Missing, id)
	}
}

// ReadPhenotypes reads "<individual> <status>" lines. Any malformed line
// fails the whole file.
func ReadPhenotypes(ctx context.Context, r io.Reader, name string) (Phenotypes, error) {
	var p Phenotypes
	sc := newScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Phenotypes{}, err
			}
		}
		text := sc.Text()
		if skip(text) {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return Phenotypes{}, &LineError{File: name, Line: line,
				cause: fmt.Errorf("%w: got %d fields, want 2", ErrColumnCount, len(fields))}
		}
		st, err := ParseStatus(fields[1])
		if err != nil {
			return Phenotypes{}, &LineError{File: name, Line: line, cause: err}
		}
		p.Add(fields[0], st)
	}
	if err := sc.Err(); err != nil {
		return Phenotypes{}, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}
