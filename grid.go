package mandel

import (
	"bufio"
	"fmt"
	"io"
)

// Grid holds the escape-time counts of one width×height evaluation.
// Iters is row-major: Iters[i*Width+j] is row i, column j.
type Grid struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Iters  []int32 `json:"iters"`
}

// NewGrid allocates a zeroed grid of the given dimensions.
func NewGrid(width, height int) Grid {
	return Grid{
		Width:  width,
		Height: height,
		Iters:  make([]int32, width*height),
	}
}

// At returns the count of row i, column j.
func (g Grid) At(i, j int) int32 {
	return g.Iters[i*g.Width+j]
}

// Dump writes the grid as text: one line per row, counts separated by
// single spaces.
func (g Grid) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", g.At(i, j))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
