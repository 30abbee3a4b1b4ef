// Command episcan loads genotype data and tests marker pairs for
// case/control epistasis.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "episcan",
		Short: "Pairwise epistasis scans over biallelic genotype data",
		Long: `episcan loads a genotype matrix or a PLINK fileset, partitions the
individuals into cases and controls, and tests every pair of markers with a
4 degree-of-freedom log-likelihood ratio test.

Inputs and outputs may be local paths or s3://, gs:// and minio:// URLs.
Text inputs and outputs ending in .gz, .zst or .lz4 are (de)compressed.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	g.register(root)

	root.AddCommand(scanCommand(g))
	root.AddCommand(distributionCommand(g))
	root.AddCommand(convertCommand(g))
	root.AddCommand(versionCommand())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
