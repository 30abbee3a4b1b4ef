package episcan

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/episcan/internal/mask"
)

// SelectionReport summarises a successful Select.
type SelectionReport struct {
	// Version increases with every successful selection.
	Version  uint64 `json:"version"`
	Cases    int    `json:"cases"`
	Controls int    `json:"controls"`
	// Unknown lists identifiers that are not individuals of the study.
	Unknown []string `json:"unknown,omitempty"`
	// Excluded lists identifiers of excluded individuals that were dropped.
	Excluded []string `json:"excluded,omitempty"`
}

// Select replaces the case/control partition. Unknown identifiers are
// skipped and reported; individuals listed as both case and control fail the
// selection with a *SelectionError naming all of them, and the previous
// selection stays in place.
//
// Queries already running keep the selection they started with.
func (s *Study) Select(ctx context.Context, cases, controls []string) (SelectionReport, error) {
	start := time.Now()

	var rep SelectionReport
	casePos, unknownCases := s.individuals.Resolve(cases)
	controlPos, unknownControls := s.individuals.Resolve(controls)
	rep.Unknown = append(unknownCases, unknownControls...)

	casePos, excludedCases := s.active(casePos)
	controlPos, excludedControls := s.active(controlPos)
	rep.Excluded = append(excludedCases, excludedControls...)

	snap, err := s.masks.Select(ctx, casePos, controlPos)
	if err != nil {
		var oe *mask.OverlapError
		if errors.As(err, &oe) {
			ids := make([]string, len(oe.Columns))
			for i, c := range oe.Columns {
				ids[i] = s.individuals.ID(c)
			}
			err = &SelectionError{Overlapping: ids, Unknown: rep.Unknown, cause: translateError(err)}
		} else {
			err = translateError(err)
		}
		s.opts.logger.LogSelect(ctx, len(cases), len(controls), len(rep.Unknown), err)
		s.opts.metrics.OnSelect(len(cases), len(controls), len(rep.Unknown), time.Since(start), err)
		return SelectionReport{}, err
	}

	rep.Version = snap.Version()
	rep.Cases = snap.Count(mask.Case)
	rep.Controls = snap.Count(mask.Control)

	s.opts.logger.WithVersion(rep.Version).LogSelect(ctx, rep.Cases, rep.Controls, len(rep.Unknown), nil)
	s.opts.metrics.OnSelect(rep.Cases, rep.Controls, len(rep.Unknown), time.Since(start), nil)
	return rep, nil
}

// active drops inactive positions and returns their identifiers.
func (s *Study) active(pos []int) (kept []int, excluded []string) {
	kept = pos[:0]
	for _, p := range pos {
		if s.individuals.IsActive(p) {
			kept = append(kept, p)
		} else {
			excluded = append(excluded, s.individuals.ID(p))
		}
	}
	return kept, excluded
}
