// server coordinates a distributed escape-time evaluation. It splits the
// requested grid into tiles, hands them to workers connecting on /ws and
// assembles the finished grid. All number crunching happens on the
// workers; the server only schedules and collects.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	mandel "github.com/FabioLCCardoso/mandelgrid"
)

type serverOpts struct {
	port     int
	width    int
	height   int
	region   string
	bounds   []float64
	maxIter  int
	tileSize int
	out      string
}

func mainCmd() *cobra.Command {
	opts := &serverOpts{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "coordinate distributed escape-time evaluation of a grid",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 8080, "HTTP port workers connect to")
	cmd.Flags().IntVar(&opts.width, "width", 1920, "grid width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 1080, "grid height in pixels")
	cmd.Flags().StringVar(&opts.region, "region", "seahorse-valley", "named region to sample")
	cmd.Flags().Float64SliceVar(&opts.bounds, "bounds", nil, "explicit bounds minReal,maxReal,minImag,maxImag (overrides --region)")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", 1000, "iteration limit per point")
	cmd.Flags().IntVar(&opts.tileSize, "tile", 64, "tile edge length in pixels")
	cmd.Flags().StringVar(&opts.out, "out", "mandel.grid", "file the finished grid is written to")

	return cmd
}

func main() {
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *serverOpts) error {
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

	sched := newGridScheduler(opts.width, opts.height, region, opts.maxIter, opts.tileSize)

	srv := webServer(ctx, opts.port, sched)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	log.Printf("listening on http://localhost:%d", opts.port)
	log.Printf("waiting for workers on ws://localhost:%d/ws", opts.port)

	grid, err := sched.GetGrid()
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := grid.Dump(f); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	log.Printf("finished grid written to %q", opts.out)

	// Stay up so late /grid clients can still fetch the result.
	<-ctx.Done()
	return srv.Shutdown(context.Background())
}
