package mandel

import "image"

// GridProvider hands out the fully evaluated grid. Implementations block
// until every tile has been rendered.
type GridProvider interface {
	GetGrid() (Grid, error)
}

// TileRenderer evaluates one tile of a gridW×gridH grid sampled from r.
// Plane coordinates are derived from the full grid dimensions, so tiles
// rendered separately stitch into the same counts a single full-grid
// pass produces. The returned slice holds tile.Dx()*tile.Dy() counts,
// row-major within the tile.
type TileRenderer interface {
	RenderTile(r Region, tile image.Rectangle, gridW, gridH, maxIter int) ([]int32, error)
}
