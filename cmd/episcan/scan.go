package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/report"
)

type scanFlags struct {
	out      string
	maxP     float64
	markers  []string
	progress bool
	interval time.Duration
}

func scanCommand(g *globalFlags) *cobra.Command {
	s := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Test every marker pair for epistasis",
		Example: `  episcan scan --geno geno.txt.zst --pheno pheno.txt --out pairs.tsv
  episcan scan --bfile s3://cohort/plink/chr1 --max-p 1e-6 --out pairs.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, g, s)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&s.out, "out", "o", "-", "result file (.tsv, .jsonl or .sqlite, optionally compressed); - writes TSV to stdout")
	f.Float64Var(&s.maxP, "max-p", 0, "only report pairs with a p-value at or below this threshold (0 = report all)")
	f.StringSliceVarP(&s.markers, "markers", "m", nil, "restrict the scan to these markers")
	f.BoolVar(&s.progress, "progress", false, "show a progress bar on stderr")
	f.DurationVar(&s.interval, "progress-interval", time.Second, "minimum time between progress updates")
	return cmd
}

func runScan(cmd *cobra.Command, g *globalFlags, s *scanFlags) (err error) {
	ctx := cmd.Context()
	e, err := g.env(cmd)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.Close()) }()

	maxP := s.maxP
	if !cmd.Flags().Changed("max-p") {
		maxP = e.cfg.MaxP
	}

	study, ph, err := e.load(ctx, g)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, study.Close()) }()

	if len(ph.Cases) == 0 && len(ph.Controls) == 0 {
		return errors.New("scan needs phenotypes: use --pheno or a .fam file with case/control status")
	}
	sel, err := study.Select(ctx, ph.Cases, ph.Controls)
	if err != nil {
		return err
	}
	if len(sel.Unknown) > 0 {
		e.logger.Warn("phenotyped individuals not in genotype data", "count", len(sel.Unknown))
	}

	reportOpts, err := e.cfg.reportOptions()
	if err != nil {
		return err
	}
	out := newOutput(ctx, e, s.out, cmd.OutOrStdout(), reportOpts)
	opts := episcan.ScanOptions{
		Markers:          s.markers,
		MaxPValue:        maxP,
		ProgressInterval: s.interval,
	}
	var bar *progressBar
	if s.progress {
		bar = &progressBar{w: cmd.ErrOrStderr()}
		opts.Progress = bar.set
	}

	sum, err := study.ScanPairs(ctx, opts, out.write)
	bar.finish()
	if err != nil {
		return errors.Join(err, out.abort())
	}
	if err := out.finish(ctx, sum); err != nil {
		return err
	}
	e.logger.Info("scan complete",
		"markers", sum.Markers, "pairs", sum.Pairs, "emitted", sum.Emitted,
		"skipped", len(sum.Skipped), "duration", sum.Duration)
	return nil
}

// output opens the result sink on the first result so that a failed scan
// leaves nothing behind.
type output struct {
	e      *env
	target string
	stdout io.Writer
	ctx    context.Context
	opts   []report.Option
	sink   report.Sink
}

func newOutput(ctx context.Context, e *env, target string, stdout io.Writer, opts []report.Option) *output {
	return &output{ctx: ctx, e: e, target: target, stdout: stdout, opts: opts}
}

func (o *output) open(ctx context.Context) error {
	if o.sink != nil {
		return nil
	}
	if o.target == "-" || o.target == "" {
		o.sink = report.NewTSV(o.stdout)
		return nil
	}
	loc, err := parseLocation(o.target)
	if err != nil {
		return err
	}
	dst, err := o.e.open(ctx, loc)
	if err != nil {
		return err
	}
	sink, err := report.Create(ctx, dst, loc.Name, o.opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", o.target, err)
	}
	o.sink = sink
	return nil
}

func (o *output) write(r episcan.PairResult) error {
	if err := o.open(o.ctx); err != nil {
		return err
	}
	return o.sink.Write(r)
}

func (o *output) finish(ctx context.Context, sum episcan.ScanSummary) error {
	if err := o.open(ctx); err != nil {
		return err
	}
	if sw, ok := o.sink.(report.SummaryWriter); ok {
		if err := sw.WriteSummary(sum); err != nil {
			return errors.Join(err, o.sink.Close())
		}
	}
	return o.sink.Close()
}

func (o *output) abort() error {
	if o.sink == nil {
		return nil
	}
	return o.sink.Close()
}

// progressBar starts a pb bar on the first update. Updates may arrive from
// several goroutines.
type progressBar struct {
	w    io.Writer
	once sync.Once
	bar  *pb.ProgressBar
}

func (p *progressBar) set(done, total int) {
	p.once.Do(func() {
		p.bar = pb.Full.New(total).SetWriter(p.w).Start()
	})
	p.bar.SetCurrent(int64(done))
}

func (p *progressBar) finish() {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Finish()
}
