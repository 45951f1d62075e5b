package mandel

import "fmt"

// Region is a rectangular bounding box in the complex plane. MinReal and
// MaxReal bound the real axis, MinImag and MaxImag the imaginary axis.
// A well-formed region has MaxReal > MinReal and MaxImag > MinImag.
type Region struct {
	MinReal float64 `json:"minReal"`
	MaxReal float64 `json:"maxReal"`
	MinImag float64 `json:"minImag"`
	MaxImag float64 `json:"maxImag"`
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Overview – the whole set with a little margin
	Overview = Region{
		MinReal: -2.5,
		MaxReal: 1.0,
		MinImag: -1.2,
		MaxImag: 1.2,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		MinReal: -0.8,
		MaxReal: -0.7,
		MinImag: 0.05,
		MaxImag: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		MinReal: -1.85,
		MaxReal: -1.75,
		MinImag: -0.10,
		MaxImag: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		MinReal: -0.7435,
		MaxReal: -0.7420,
		MinImag: 0.1310,
		MaxImag: 0.1325,
	}

	// Bulb Spiral – spiral next to the main bulb
	BulbSpiral = Region{
		MinReal: -0.088,
		MaxReal: -0.064,
		MinImag: 0.654,
		MaxImag: 0.672,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		MinReal: -0.7400,
		MaxReal: -0.7350,
		MinImag: 0.1800,
		MaxImag: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		MinReal: -1.7390,
		MaxReal: -1.7375,
		MinImag: -0.0235,
		MaxImag: -0.0220,
	}
)

var regionsByName = map[string]Region{
	"overview":           Overview,
	"seahorse-valley":    SeahorseValley,
	"elephant-valley":    ElephantValley,
	"spiral-minibrot":    SpiralMinibrot,
	"bulb-spiral":        BulbSpiral,
	"dragon-valley":      ValleyOfTheDragon,
	"minibrot-in-spiral": MinibrotInMiniSpiral,
}

// LookupRegion resolves one of the named landmark regions.
func LookupRegion(name string) (Region, bool) {
	r, ok := regionsByName[name]
	return r, ok
}

// ResolveRegion picks the region to sample from command-line input:
// bounds, when present, must be the four values minReal, maxReal,
// minImag, maxImag and take precedence; otherwise name is looked up in
// the landmark catalog.
func ResolveRegion(name string, bounds []float64) (Region, error) {
	switch len(bounds) {
	case 0:
		r, ok := LookupRegion(name)
		if !ok {
			return Region{}, fmt.Errorf("unknown region %q", name)
		}
		return r, nil
	case 4:
		return Region{
			MinReal: bounds[0],
			MaxReal: bounds[1],
			MinImag: bounds[2],
			MaxImag: bounds[3],
		}, nil
	default:
		return Region{}, fmt.Errorf("bounds want 4 values (minReal,maxReal,minImag,maxImag), got %d", len(bounds))
	}
}
