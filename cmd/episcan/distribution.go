package main

import (
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/episcan/genotype"
)

func distributionCommand(g *globalFlags) *cobra.Command {
	var markers []string
	cmd := &cobra.Command{
		Use:     "distribution",
		Aliases: []string{"dist"},
		Short:   "Print per-marker genotype counts",
		Long: `distribution prints one TSV row per loaded marker with its AA, Aa, aa and
missing counts and the minor allele frequency. When phenotypes are available
the counts are split into case and control columns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			e, err := g.env(cmd)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, e.Close()) }()

			study, ph, err := e.load(ctx, g)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, study.Close()) }()

			split := len(ph.Cases) > 0 || len(ph.Controls) > 0
			if split {
				if _, err := study.Select(ctx, ph.Cases, ph.Controls); err != nil {
					return err
				}
			}
			if len(markers) == 0 {
				markers = study.Markers()
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			w.Comma = '\t'
			if split {
				_ = w.Write([]string{"marker",
					"case_AA", "case_Aa", "case_aa", "case_missing",
					"control_AA", "control_Aa", "control_aa", "control_missing", "maf"})
			} else {
				_ = w.Write([]string{"marker", "AA", "Aa", "aa", "missing", "maf"})
			}

			for _, id := range markers {
				if !study.Loaded(id) {
					e.logger.Warn("marker not loaded", "marker", id)
					continue
				}
				row := []string{id}
				var maf float64
				if split {
					cc, err := study.CaseControlDistribution(id)
					if err != nil {
						return err
					}
					row = appendCounts(appendCounts(row, cc.Case), cc.Control)
					maf = cc.Combined().MinorAlleleFrequency()
				} else {
					d, err := study.Distribution(id)
					if err != nil {
						return err
					}
					row = appendCounts(row, d)
					maf = d.MinorAlleleFrequency()
				}
				row = append(row, strconv.FormatFloat(maf, 'f', 6, 64))
				if err := w.Write(row); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().StringSliceVarP(&markers, "markers", "m", nil, "only print these markers")
	return cmd
}

func appendCounts(row []string, d genotype.Distribution) []string {
	return append(row,
		strconv.Itoa(d.HomMajor), strconv.Itoa(d.Het),
		strconv.Itoa(d.HomMinor), strconv.Itoa(d.Missing))
}
