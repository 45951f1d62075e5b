// compute evaluates an escape-time grid locally and writes the counts
// as text, one row per line.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/FabioLCCardoso/mandelgrid"
	"github.com/FabioLCCardoso/mandelgrid/render"
)

type computeOpts struct {
	width   int
	height  int
	region  string
	bounds  []float64
	maxIter int
	workers int
	out     string
}

func mainCmd() *cobra.Command {
	opts := &computeOpts{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "evaluate an escape-time grid locally",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 800, "grid width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 600, "grid height in pixels")
	cmd.Flags().StringVar(&opts.region, "region", "overview", "named region to sample")
	cmd.Flags().Float64SliceVar(&opts.bounds, "bounds", nil, "explicit bounds minReal,maxReal,minImag,maxImag (overrides --region)")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", 256, "iteration limit per point")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "row-parallel workers, 0 for one per CPU")
	cmd.Flags().StringVar(&opts.out, "out", "-", "output file, - for stdout")

	return cmd
}

func main() {
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

func run(opts *computeOpts) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", opts.width, opts.height)
	}
	if opts.maxIter < 0 {
		return fmt.Errorf("iteration limit must not be negative, got %d", opts.maxIter)
	}

	region, err := mandel.ResolveRegion(opts.region, opts.bounds)
	if err != nil {
		return err
	}

	grid := mandel.NewGrid(opts.width, opts.height)

	start := time.Now()
	if opts.workers == 1 {
		mandel.Evaluate(grid.Iters, grid.Width, grid.Height, region, opts.maxIter)
	} else {
		render.Parallel(grid.Iters, grid.Width, grid.Height, region, opts.maxIter, opts.workers)
	}
	log.Printf("evaluated %dx%d at max-iter %d in %s", grid.Width, grid.Height, opts.maxIter, time.Since(start))

	var w io.Writer = os.Stdout
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := grid.Dump(w); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	if opts.out != "-" {
		log.Printf("grid written to %q", opts.out)
	}
	return nil
}
