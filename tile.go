package mandel

import "image"

// SplitGrid splits r into tiles of size tileW × tileH. Tiles at the
// right and bottom edges are smaller if r is not divisible. The tiles
// cover every pixel of r exactly once.
func SplitGrid(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	var tiles []image.Rectangle

	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			tiles = append(tiles, image.Rect(
				x,
				y,
				min(x+tileW, r.Max.X),
				min(y+tileH, r.Max.Y),
			))
		}
	}

	return tiles
}
