package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/codec"
	"github.com/hupe1980/episcan/loader"
	"github.com/hupe1980/episcan/report"
)

func convertCommand(g *globalFlags) *cobra.Command {
	var (
		in   string
		out  string
		maxP float64
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite a JSON-lines result file in another format",
		Example: `  episcan convert --in pairs.jsonl.zst --out pairs.sqlite
  episcan convert --in s3://cohort/scans/chr1.jsonl --max-p 1e-8 --out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			e, err := g.env(cmd)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, e.Close()) }()

			if in == "" {
				return errors.New("--in is required")
			}
			if f := report.FormatFor(in); f != report.JSONL {
				return fmt.Errorf("--in must be a JSON-lines file, got %s", f)
			}
			rc, err := codec.ByName(e.cfg.Codec)
			if err != nil {
				return err
			}
			reportOpts, err := e.cfg.reportOptions()
			if err != nil {
				return err
			}

			loc, err := parseLocation(in)
			if err != nil {
				return err
			}
			src, err := e.open(ctx, loc)
			if err != nil {
				return err
			}
			r, err := loader.Open(ctx, src, loc.Name, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, r.Close()) }()

			dst := newOutput(ctx, e, out, cmd.OutOrStdout(), reportOpts)
			var sum episcan.ScanSummary
			err = report.ReadJSONL(r, rc, func(res episcan.PairResult) error {
				sum.Pairs++
				if maxP > 0 && res.PValue > maxP {
					return nil
				}
				sum.Emitted++
				return dst.write(res)
			})
			if err != nil {
				return errors.Join(fmt.Errorf("%s: %w", in, err), dst.abort())
			}
			if err := dst.finish(ctx, sum); err != nil {
				return err
			}
			e.logger.Info("results converted", "read", sum.Pairs, "written", sum.Emitted)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&in, "in", "i", "", "JSON-lines result file written by scan")
	f.StringVarP(&out, "out", "o", "-", "result file (.tsv, .jsonl or .sqlite, optionally compressed); - writes TSV to stdout")
	f.Float64Var(&maxP, "max-p", 0, "only keep pairs with a p-value at or below this threshold (0 = keep all)")
	return cmd
}
