// worker connects to a mandelgrid server and renders the tiles it is
// handed, answering every TileJob with locally computed escape-time
// counts until the server closes the connection.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"

	mandel "github.com/FabioLCCardoso/mandelgrid"
	"github.com/FabioLCCardoso/mandelgrid/render"
)

// jobReadLimit bounds incoming tile jobs. Jobs are a handful of numbers;
// the default websocket limit would do, but keep it symmetric with the
// server side.
const jobReadLimit = 1 << 22

func mainCmd() *cobra.Command {
	var server string
	var parallel int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "render tiles for a mandelgrid server",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), server, parallel)
		},
	}

	cmd.Flags().StringVar(&server, "server", "ws://localhost:8080/ws", "websocket address of the server")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "number of concurrent worker sessions")

	return cmd
}

func main() {
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

func run(ctx context.Context, server string, parallel int) error {
	if parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", parallel)
	}

	log.Printf("connecting to %s with %d session(s)", server, parallel)

	errs := make([]error, parallel)
	var wg sync.WaitGroup
	wg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func(session int) {
			defer wg.Done()
			errs[session] = renderLoop(ctx, server, session)
		}(i)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// renderLoop runs one worker session: dial the server, then answer tile
// jobs until the server closes the connection.
func renderLoop(ctx context.Context, server string, session int) error {
	c, _, err := websocket.Dial(ctx, server, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", server, err)
	}
	defer c.Close(websocket.StatusInternalError, "worker shutting down")
	c.SetReadLimit(jobReadLimit)

	renderer := render.Renderer{OnTileRender: func(tile image.Rectangle) {
		log.Printf("session %d: rendering tile %v", session, tile)
	}}

	for {
		var job mandel.TileJob
		if err := wsjson.Read(ctx, c, &job); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				log.Printf("session %d: server closed connection, done", session)
				return nil
			}
			return fmt.Errorf("read job: %w", err)
		}

		iters, err := renderer.RenderTile(job.Region, job.Rect(), job.GridW, job.GridH, job.MaxIter)
		if err != nil {
			return fmt.Errorf("render tile %v: %w", job.Rect(), err)
		}

		res := mandel.TileResult{X0: job.X0, Y0: job.Y0, W: job.W, H: job.H, Iters: iters}
		if err := wsjson.Write(ctx, c, res); err != nil {
			return fmt.Errorf("send result for tile %v: %w", job.Rect(), err)
		}
	}
}
