package mandel

import "image"

// TileJob asks a worker to evaluate one tile of the global grid.
type TileJob struct {
	Region  Region `json:"region"`
	X0      int    `json:"x0"`
	Y0      int    `json:"y0"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	GridW   int    `json:"gridW"`
	GridH   int    `json:"gridH"`
	MaxIter int    `json:"maxIter"`
}

// Rect returns the tile rectangle in global grid coordinates.
func (j TileJob) Rect() image.Rectangle {
	return image.Rect(j.X0, j.Y0, j.X0+j.W, j.Y0+j.H)
}

// TileResult carries the counts of one finished tile, row-major within
// the tile.
type TileResult struct {
	X0    int     `json:"x0"`
	Y0    int     `json:"y0"`
	W     int     `json:"w"`
	H     int     `json:"h"`
	Iters []int32 `json:"iters"`
}

// Rect returns the tile rectangle in global grid coordinates.
func (r TileResult) Rect() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X0+r.W, r.Y0+r.H)
}
