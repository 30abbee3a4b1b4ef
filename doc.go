// Package episcan provides an in-memory genotype store for genome-wide
// epistasis scans.
//
// A Study holds the calls of M markers for N individuals in bit-planes, one
// bit per individual, so that genotype counts and 3×3 contingency tables are
// computed a machine word at a time with population counts.
//
// # Quick Start
//
//	study, _ := episcan.New(markerIDs, individualIDs)
//	defer study.Close()
//
//	for _, m := range markers {
//	    if err := study.AddRow(m.ID, m.Calls); err != nil { // e.g. ["AA","AC","CC","00"]
//	        log.Print(err) // *episcan.LoadError; the marker stays empty
//	    }
//	}
//
//	rep, err := study.Select(ctx, caseIDs, controlIDs)
//
//	res, _ := study.Test("rs123", "rs456")
//	fmt.Println(res.Statistic, res.PValue)
//
// # Genotype Roles
//
// Allele letters differ per marker, so each marker assigns its calls to the
// roles AA, Aa and aa in order of first occurrence: the first homozygote is
// AA, the second aa, the heterozygote Aa. A fourth distinct call rejects the
// marker.
//
// # All-Pairs Scans
//
//	sum, err := study.ScanPairs(ctx, episcan.ScanOptions{MaxPValue: 1e-6},
//	    func(r episcan.PairResult) error {
//	        fmt.Println(r.MarkerA, r.MarkerB, r.PValue)
//	        return nil
//	    })
//
// Pairs are tested in parallel; results are delivered only after the whole
// scan succeeded.
//
// # Usage Errors
//
// Queries on markers that are not loaded, and case/control queries before
// the first Select, panic. Load and selection problems are returned as
// errors.
package episcan
