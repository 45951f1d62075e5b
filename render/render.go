// Package render evaluates escape-time grids tile by tile and in
// parallel. Both entry points reproduce mandel.Evaluate bit for bit;
// they only change how the work is partitioned.
package render

import (
	"image"
	"runtime"
	"sync"

	mandel "github.com/FabioLCCardoso/mandelgrid"
)

// RenderTile evaluates one tile of a gridW×gridH grid sampled from r.
// The plane coordinate of every pixel comes from the full grid
// dimensions, not the tile, so stitching all tiles of a grid together
// matches a single mandel.Evaluate pass over the whole grid.
func RenderTile(r mandel.Region, tile image.Rectangle, gridW, gridH, maxIter int) []int32 {
	realStep := (r.MaxReal - r.MinReal) / float64(gridW)
	imagStep := (r.MaxImag - r.MinImag) / float64(gridH)

	out := make([]int32, tile.Dx()*tile.Dy())

	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		im := r.MinImag + float64(y)*imagStep
		row := (y - tile.Min.Y) * tile.Dx()

		for x := tile.Min.X; x < tile.Max.X; x++ {
			re := r.MinReal + float64(x)*realStep
			out[row+x-tile.Min.X] = int32(mandel.EscapeTime(re, im, maxIter))
		}
	}

	return out
}

// Renderer is the in-process mandel.TileRenderer.
type Renderer struct {
	// OnTileRender, when set, is called before each tile is evaluated.
	OnTileRender func(tile image.Rectangle)
}

func (rd Renderer) RenderTile(r mandel.Region, tile image.Rectangle, gridW, gridH, maxIter int) ([]int32, error) {
	if rd.OnTileRender != nil {
		rd.OnTileRender(tile)
	}
	return RenderTile(r, tile, gridW, gridH, maxIter), nil
}

var _ mandel.TileRenderer = Renderer{}

// Parallel fills out like mandel.Evaluate, spreading rows across workers.
// Each worker owns an interleaved subset of rows, so write sets are
// disjoint and no locking is needed. workers of 0 or less means
// GOMAXPROCS.
func Parallel(out []int32, width, height int, r mandel.Region, maxIter, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	realStep := (r.MaxReal - r.MinReal) / float64(width)
	imagStep := (r.MaxImag - r.MinImag) / float64(height)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()

			for i := worker; i < height; i += workers {
				im := r.MinImag + float64(i)*imagStep
				row := i * width

				for j := 0; j < width; j++ {
					re := r.MinReal + float64(j)*realStep
					out[row+j] = int32(mandel.EscapeTime(re, im, maxIter))
				}
			}
		}(w)
	}
	wg.Wait()
}
