// Package mandel computes escape-time grids of the Mandelbrot set.
//
// The kernel is deliberately plain: the direct z = z² + c recurrence in
// double precision, no periodicity checking, no smooth coloring. Callers
// that want progress reporting or distribution build those on top (see
// the render package and cmd/server).
package mandel

// EscapeTime returns the number of iterations of z = z² + c, starting
// from z = 0, before the squared magnitude of z first exceeds 4. If that
// never happens within maxIter iterations, it returns maxIter and the
// point is treated as a member of the set.
//
// The result is always in [0, maxIter]. A maxIter of 0 returns 0 without
// iterating.
func EscapeTime(re, im float64, maxIter int) int {
	var zr, zi float64

	for iter := 0; iter < maxIter; iter++ {
		newZr := zr*zr - zi*zi + re
		newZi := 2*zr*zi + im

		zr = newZr
		zi = newZi

		if zr*zr+zi*zi > 4 {
			return iter
		}
	}

	return maxIter
}

// Evaluate fills out with the escape time of every point of a
// width×height grid sampled from r. Row i, column j lands at
// out[i*width+j]; the sample coordinate is
//
//	re = r.MinReal + j*(r.MaxReal-r.MinReal)/width
//	im = r.MinImag + i*(r.MaxImag-r.MinImag)/height
//
// out must hold at least width*height slots and both dimensions must be
// positive; neither is validated here. Every cell is written exactly
// once and out is never read, so repeated calls with equal arguments
// produce bit-identical buffers.
func Evaluate(out []int32, width, height int, r Region, maxIter int) {
	realStep := (r.MaxReal - r.MinReal) / float64(width)
	imagStep := (r.MaxImag - r.MinImag) / float64(height)

	for i := 0; i < height; i++ {
		im := r.MinImag + float64(i)*imagStep
		row := i * width

		for j := 0; j < width; j++ {
			re := r.MinReal + float64(j)*realStep
			out[row+j] = int32(EscapeTime(re, im, maxIter))
		}
	}
}
