package plink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/episcan/loader"
)

// Sample is one line of a .fam file.
type Sample struct {
	FamilyID string
	ID       string
	Status   loader.Status
}

// ReadFAM reads the samples of a .fam file in order.
func ReadFAM(ctx context.Context, r io.Reader, name string) ([]Sample, error) {
	var out []Sample
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, fmt.Errorf("%s:%d: %w: got %d fields, want 6", name, line, loader.ErrColumnCount, len(fields))
		}
		st, err := loader.ParseStatus(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		out = append(out, Sample{FamilyID: fields[0], ID: fields[1], Status: st})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Phenotypes partitions samples by status.
func Phenotypes(samples []Sample) loader.Phenotypes {
	var p loader.Phenotypes
	for _, s := range samples {
		p.Add(s.ID, s.Status)
	}
	return p
}

// IDs returns the sample identifiers in order.
func IDs(samples []Sample) []string {
	ids := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
	}
	return ids
}
