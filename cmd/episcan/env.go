package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/codec"
	"github.com/hupe1980/episcan/loader"
	"github.com/hupe1980/episcan/loader/plink"
)

// globalFlags are shared by every command and override the config file.
type globalFlags struct {
	config      string
	encoding    string
	workers     int
	memoryLimit int64
	strict      bool
	shortcut    bool
	compaction  bool
	maxErrors   int
	ioLimit     int64
	cacheDir    string
	logLevel    string
	logFormat   string
	metricsAddr string
	codec       string

	geno  string
	pheno string
	plink string
}

func (g *globalFlags) register(cmd *cobra.Command) {
	d := defaultConfig()
	f := cmd.PersistentFlags()
	f.StringVarP(&g.config, "config", "c", "", "TOML configuration file")
	f.StringVar(&g.encoding, "encoding", d.Encoding, "genotype encoding: bitplane, packed2 or packed4")
	f.IntVarP(&g.workers, "workers", "t", 0, "worker goroutines (0 = GOMAXPROCS)")
	f.Int64Var(&g.memoryLimit, "memory-limit", 0, "cap on genotype and selection memory in bytes (0 = unlimited)")
	f.BoolVar(&g.strict, "strict-alleles", d.StrictAlleles, "reject heterozygotes sharing no allele with a homozygote")
	f.BoolVar(&g.shortcut, "shortcut", d.Shortcut, "derive contingency cells from marginals when nothing is missing")
	f.BoolVar(&g.compaction, "compaction", d.Compaction, "compact genotype planes per case/control group")
	f.IntVar(&g.maxErrors, "max-errors", d.MaxErrors, "rejected rows tolerated per input (-1 = unlimited)")
	f.Int64Var(&g.ioLimit, "io-limit", 0, "input read limit in bytes per second (0 = unlimited)")
	f.StringVar(&g.cacheDir, "cache-dir", "", "local cache for remote inputs")
	f.StringVar(&g.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")
	f.StringVar(&g.logFormat, "log-format", d.LogFormat, "log format: text or json")
	f.StringVar(&g.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.StringVar(&g.codec, "codec", d.Codec, "record codec for .jsonl files: "+strings.Join(codec.Names(), " or "))

	f.StringVarP(&g.geno, "geno", "g", "", "genotype matrix")
	f.StringVarP(&g.pheno, "pheno", "p", "", "phenotype file (with --geno)")
	f.StringVar(&g.plink, "bfile", "", "PLINK fileset prefix (.bed/.bim/.fam)")
}

// resolve loads the config file and overlays the flags that were set.
func (g *globalFlags) resolve(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(g.config)
	if err != nil {
		return Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("encoding") {
		cfg.Encoding = g.encoding
	}
	if f.Changed("workers") {
		cfg.Workers = g.workers
	}
	if f.Changed("memory-limit") {
		cfg.MemoryLimit = g.memoryLimit
	}
	if f.Changed("strict-alleles") {
		cfg.StrictAlleles = g.strict
	}
	if f.Changed("shortcut") {
		cfg.Shortcut = g.shortcut
	}
	if f.Changed("compaction") {
		cfg.Compaction = g.compaction
	}
	if f.Changed("max-errors") {
		cfg.MaxErrors = g.maxErrors
	}
	if f.Changed("io-limit") {
		cfg.IOLimit = g.ioLimit
	}
	if f.Changed("cache-dir") {
		cfg.CacheDir = g.cacheDir
	}
	if f.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr = g.metricsAddr
	}
	if f.Changed("codec") {
		cfg.Codec = g.codec
	}
	return cfg, nil
}

// env is the per-command runtime built from the resolved config.
type env struct {
	cfg     Config
	logger  *episcan.Logger
	metrics episcan.MetricsObserver
	closers []func() error
}

func (g *globalFlags) env(cmd *cobra.Command) (*env, error) {
	cfg, err := g.resolve(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.logger()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		e.metrics = NewPrometheusObserver(reg)
		stop := serveMetrics(cfg.MetricsAddr, reg, logger)
		e.closers = append(e.closers, func() error { stop(); return nil })
	}
	return e, nil
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}

// load builds a study from --bfile or --geno and returns the phenotypes
// found next to it. Phenotypes are empty when --geno is used without --pheno.
func (e *env) load(ctx context.Context, g *globalFlags) (*episcan.Study, loader.Phenotypes, error) {
	studyOpts, err := e.cfg.studyOptions(e.logger, e.metrics)
	if err != nil {
		return nil, loader.Phenotypes{}, err
	}
	loadOpts := e.cfg.loaderOptions(e.logger)

	switch {
	case g.plink != "" && g.geno != "":
		return nil, loader.Phenotypes{}, errors.New("--bfile and --geno are mutually exclusive")
	case g.plink != "":
		loc, err := parseLocation(g.plink)
		if err != nil {
			return nil, loader.Phenotypes{}, err
		}
		src, err := e.open(ctx, loc)
		if err != nil {
			return nil, loader.Phenotypes{}, err
		}
		ds, err := plink.Load(ctx, src, plink.Files(loc.Name), studyOpts, loadOpts...)
		if err != nil {
			return nil, loader.Phenotypes{}, err
		}
		e.reportRejected(ds.Report)
		return ds.Study, ds.Phenotypes, nil
	case g.geno != "":
		loc, err := parseLocation(g.geno)
		if err != nil {
			return nil, loader.Phenotypes{}, err
		}
		src, err := e.open(ctx, loc)
		if err != nil {
			return nil, loader.Phenotypes{}, err
		}
		study, rep, err := loader.LoadStudy(ctx, src, loc.Name, studyOpts, loadOpts...)
		if err != nil {
			return nil, loader.Phenotypes{}, err
		}
		e.reportRejected(rep)

		var ph loader.Phenotypes
		if g.pheno != "" {
			ph, err = e.loadPhenotypes(ctx, g.pheno, loadOpts)
			if err != nil {
				return nil, loader.Phenotypes{}, errors.Join(err, study.Close())
			}
		}
		return study, ph, nil
	default:
		return nil, loader.Phenotypes{}, errors.New("one of --geno or --bfile is required")
	}
}

func (e *env) loadPhenotypes(ctx context.Context, raw string, opts []loader.Option) (loader.Phenotypes, error) {
	loc, err := parseLocation(raw)
	if err != nil {
		return loader.Phenotypes{}, err
	}
	src, err := e.open(ctx, loc)
	if err != nil {
		return loader.Phenotypes{}, err
	}
	return loader.LoadPhenotypes(ctx, src, loc.Name, opts...)
}

func (e *env) open(ctx context.Context, loc location) (blobstore.Store, error) {
	st, closeFn, err := loc.open(ctx, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Name, err)
	}
	e.closers = append(e.closers, closeFn)
	return st, nil
}

func (e *env) reportRejected(rep loader.Report) {
	for _, err := range rep.Rejected {
		e.logger.Warn("row rejected", "error", err)
	}
}
