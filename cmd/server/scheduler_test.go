package main

import (
	"image"
	"slices"
	"testing"

	mandel "github.com/FabioLCCardoso/mandelgrid"
	"github.com/FabioLCCardoso/mandelgrid/render"
)

func resultFor(gs *gridScheduler, tile image.Rectangle) mandel.TileResult {
	return mandel.TileResult{
		X0:    tile.Min.X,
		Y0:    tile.Min.Y,
		W:     tile.Dx(),
		H:     tile.Dy(),
		Iters: render.RenderTile(gs.region, tile, gs.grid.Width, gs.grid.Height, gs.maxIter),
	}
}

func TestSchedulerAssemblesGrid(t *testing.T) {
	const width, height, maxIter = 40, 30, 50

	gs := newGridScheduler(width, height, mandel.SeahorseValley, maxIter, 16)

	for {
		tile, found := gs.popTile()
		if !found {
			break
		}
		gs.tileFinished(resultFor(gs, tile))
	}

	select {
	case <-gs.ctx.Done():
	default:
		t.Fatal("scheduler not marked complete after all tiles finished")
	}

	grid, err := gs.GetGrid()
	if err != nil {
		t.Fatalf("GetGrid: %v", err)
	}

	want := make([]int32, width*height)
	mandel.Evaluate(want, width, height, mandel.SeahorseValley, maxIter)
	for i, v := range want {
		if grid.Iters[i] != v {
			t.Fatalf("assembled grid differs from full evaluation at index %d: got %d, want %d", i, grid.Iters[i], v)
		}
	}

	if got := gs.finished(); got != 1 {
		t.Errorf("finished() = %f, want 1", got)
	}
}

func TestSchedulerReissuesInProcessTiles(t *testing.T) {
	gs := newGridScheduler(16, 16, mandel.Overview, 10, 16)

	first, found := gs.popTile()
	if !found {
		t.Fatal("no tile to pop")
	}

	// The only tile is now in process; an idle worker gets it again.
	again, found := gs.popTile()
	if !found || again != first {
		t.Fatalf("popTile = %v, %t; want the in-process tile %v again", again, found, first)
	}
}

func TestSchedulerDuplicateResultCountedOnce(t *testing.T) {
	gs := newGridScheduler(16, 16, mandel.Overview, 10, 8)

	tile, found := gs.popTile()
	if !found {
		t.Fatal("no tile to pop")
	}

	res := resultFor(gs, tile)
	gs.tileFinished(res)
	gs.tileFinished(res)

	if gs.finishedPixels != tile.Dx()*tile.Dy() {
		t.Errorf("finishedPixels = %d, want %d after a duplicated result", gs.finishedPixels, tile.Dx()*tile.Dy())
	}
}

func TestSchedulerLateDuplicateDropped(t *testing.T) {
	gs := newGridScheduler(16, 16, mandel.Overview, 10, 16)

	tile, found := gs.popTile()
	if !found {
		t.Fatal("no tile to pop")
	}
	// the sole tile is re-issued to a second idle worker
	if again, found := gs.popTile(); !found || again != tile {
		t.Fatalf("popTile = %v, %t; want the in-process tile %v again", again, found, tile)
	}

	// first result completes the grid and GetGrid hands it out
	gs.tileFinished(resultFor(gs, tile))
	grid, err := gs.GetGrid()
	if err != nil {
		t.Fatalf("GetGrid: %v", err)
	}
	want := slices.Clone(grid.Iters)

	// the second worker's duplicate arrives late, carrying counts
	// that must never reach the handed-out grid
	late := mandel.TileResult{
		X0:    tile.Min.X,
		Y0:    tile.Min.Y,
		W:     tile.Dx(),
		H:     tile.Dy(),
		Iters: make([]int32, tile.Dx()*tile.Dy()),
	}
	for i := range late.Iters {
		late.Iters[i] = -1
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		gs.tileFinished(late)
	}()
	<-done

	if !slices.Equal(grid.Iters, want) {
		t.Error("late duplicate result modified the assembled grid")
	}
	if gs.finishedPixels != tile.Dx()*tile.Dy() {
		t.Errorf("finishedPixels = %d, want %d after a late duplicate", gs.finishedPixels, tile.Dx()*tile.Dy())
	}
}

func TestSchedulerPopExhausted(t *testing.T) {
	gs := newGridScheduler(8, 8, mandel.Overview, 10, 8)

	tile, found := gs.popTile()
	if !found {
		t.Fatal("no tile to pop")
	}
	gs.tileFinished(resultFor(gs, tile))

	if _, found := gs.popTile(); found {
		t.Error("popTile returned a tile after every tile finished")
	}
}
