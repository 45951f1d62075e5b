package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/FabioLCCardoso/mandelgrid"
)

// gridScheduler hands tiles of one grid evaluation out to connected
// workers and assembles their results. A tile popped but not yet
// finished can be handed to a second idle worker; the first result wins
// and later duplicates are dropped, so a worker that vanishes mid-tile
// costs nothing but the re-render.
type gridScheduler struct {
	region  mandel.Region
	maxIter int
	grid    mandel.Grid

	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPixels    int
	finishedPixels int

	workers   int
	unstarted map[image.Rectangle]struct{}
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

func newGridScheduler(w, h int, region mandel.Region, maxIter, tileSize int) *gridScheduler {
	tiles := mandel.SplitGrid(image.Rect(0, 0, w, h), tileSize, tileSize)
	unstarted := make(map[image.Rectangle]struct{}, len(tiles))
	for _, t := range tiles {
		unstarted[t] = struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &gridScheduler{
		region:      region,
		maxIter:     maxIter,
		grid:        mandel.NewGrid(w, h),
		unstarted:   unstarted,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalPixels: w * h,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

func (gs *gridScheduler) popTile() (tile image.Rectangle, found bool) {
	gs.m.Lock()
	defer gs.m.Unlock()

	// Get unstarted tile
	if len(gs.unstarted) > 0 {
		for tile = range gs.unstarted {
			break
		}
		delete(gs.unstarted, tile)

		// Move popped tile to currently processed tiles
		gs.inProcess[tile] = struct{}{}
		return tile, true
	}

	// If there is no unstarted tile, we work again on a started one
	if len(gs.inProcess) > 0 {
		for tile = range gs.inProcess {
			break
		}
		return tile, true
	}

	return image.Rectangle{}, false
}

// GetGrid implements mandel.GridProvider. It blocks until every tile has
// been rendered.
func (gs *gridScheduler) GetGrid() (mandel.Grid, error) {
	<-gs.ctx.Done()
	return gs.grid, nil
}

func (gs *gridScheduler) finished() float32 {
	gs.m.Lock()
	defer gs.m.Unlock()
	return float32(gs.finishedPixels) / float32(gs.totalPixels)
}

func (gs *gridScheduler) tileFinished(res mandel.TileResult) {
	defer log.Printf("finished: %f", gs.finished())

	rect := res.Rect()
	gs.m.Lock()
	defer gs.m.Unlock()

	// A re-issued tile can be finished twice. Only the first result
	// is written; once the grid is complete, GetGrid hands out the
	// Iters slice, so a late duplicate must not touch it anymore.
	if _, found := gs.inProcess[rect]; !found {
		return
	}

	for y := 0; y < res.H; y++ {
		dst := (res.Y0+y)*gs.grid.Width + res.X0
		copy(gs.grid.Iters[dst:dst+res.W], res.Iters[y*res.W:(y+1)*res.W])
	}

	gs.finishedPixels += res.W * res.H
	delete(gs.inProcess, rect)

	if len(gs.unstarted) == 0 && len(gs.inProcess) == 0 {
		gs.ctxCancel()
	}
}

func (gs *gridScheduler) incActiveWorkers() {
	gs.m.Lock()
	gs.workers++
	w := gs.workers
	gs.m.Unlock()

	log.Printf("workers: %d", w)
}

func (gs *gridScheduler) decActiveWorkers() {
	gs.m.Lock()
	gs.workers--
	w := gs.workers
	gs.m.Unlock()

	log.Printf("workers: %d", w)
}

// serveWorker feeds tiles to one connected worker until no work remains.
// It is called from one goroutine per connection and may run for many
// workers in parallel.
func (gs *gridScheduler) serveWorker(ctx context.Context, c *websocket.Conn) error {
	gs.incActiveWorkers()
	defer gs.decActiveWorkers()

	for {
		tile, found := gs.popTile()
		if !found {
			return nil
		}

		job := mandel.TileJob{
			Region:  gs.region,
			X0:      tile.Min.X,
			Y0:      tile.Min.Y,
			W:       tile.Dx(),
			H:       tile.Dy(),
			GridW:   gs.grid.Width,
			GridH:   gs.grid.Height,
			MaxIter: gs.maxIter,
		}
		if err := wsjson.Write(ctx, c, job); err != nil {
			return fmt.Errorf("send tile %v: %w", tile, err)
		}

		var res mandel.TileResult
		if err := wsjson.Read(ctx, c, &res); err != nil {
			return fmt.Errorf("read result for tile %v: %w", tile, err)
		}
		if res.Rect() != tile || len(res.Iters) != res.W*res.H {
			return fmt.Errorf("malformed result for tile %v", tile)
		}

		gs.tileFinished(res)
	}
}
