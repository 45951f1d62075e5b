// libmandel builds the dynamically loadable module exposing the grid
// evaluator to foreign hosts (ctypes, dlopen, LoadLibrary):
//
//	go build -buildmode=c-shared -o main.so ./cmd/libmandel
//
// The exported surface is a single flat-argument function; results are
// communicated entirely through the caller-owned output buffer.
package main

import "C"

import (
	"unsafe"

	mandel "github.com/FabioLCCardoso/mandelgrid"
)

// calculate_mandelbrot fills out, a caller-owned buffer of width*height
// C ints in row-major layout (out[i*width+j] is row i, column j), with
// the escape time of every grid point. Ownership of the buffer stays
// with the caller throughout and after the call.
//
// The caller must supply positive dimensions and a buffer of at least
// width*height slots; neither is validated here.
//
//export calculate_mandelbrot
func calculate_mandelbrot(out *C.int, width, height C.int, minReal, maxReal, minImag, maxImag C.double, maxIter C.int) {
	// C int is 32 bits on every platform this targets, matching the
	// int32 result buffer.
	buf := unsafe.Slice((*int32)(unsafe.Pointer(out)), int(width)*int(height))

	r := mandel.Region{
		MinReal: float64(minReal),
		MaxReal: float64(maxReal),
		MinImag: float64(minImag),
		MaxImag: float64(maxImag),
	}

	mandel.Evaluate(buf, int(width), int(height), r, int(maxIter))
}

func main() {}
