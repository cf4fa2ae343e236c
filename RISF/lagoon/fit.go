// lagoon project fit.go
//
// Least squares calibration of the geometry fits from a stage-storage survey
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package lagoon

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// One surveyed stage of the lagoon
type SurveyPoint struct {
	Depth  float64 // ft below the embankment top
	Volume float64 // gal
	Area   float64 // ft^2
}

// Fit y = c0 + c1*x + ... + cn*x^n by least squares
func FitPolynomial(x, y []float64, degree int) (Polynomial, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("fit: %d x values but %d y values", len(x), len(y))
	}
	if degree < 0 {
		return nil, errors.New("fit: negative degree")
	}
	n := degree + 1
	if len(x) < n {
		return nil, fmt.Errorf("fit: degree %d needs at least %d points, have %d", degree, n, len(x))
	}

	// Volumes run to 1e7 so x is scaled to [-1,1] to keep the Vandermonde
	// matrix well conditioned
	scale := math.Max(math.Abs(floats.Max(x)), math.Abs(floats.Min(x)))
	if scale == 0 {
		scale = 1
	}

	a := mat.NewDense(len(x), n, nil)
	for i, xi := range x {
		p := 1.0
		for j := 0; j < n; j++ {
			a.Set(i, j, p)
			p *= xi / scale
		}
	}
	b := mat.NewVecDense(len(y), append([]float64(nil), y...))

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("fit: %v", err)
	}

	poly := make(Polynomial, n)
	for j := 0; j < n; j++ {
		poly[j] = c.AtVec(j) / math.Pow(scale, float64(j))
	}
	return poly, nil
}

// Calibrate all three fits.  Area is linear in depth, volume quadratic in
// depth and depth quadratic in volume, the same forms as the default fits.
func FitGeometry(survey []SurveyPoint) (Geometry, error) {
	depth := make([]float64, len(survey))
	volume := make([]float64, len(survey))
	area := make([]float64, len(survey))
	for i, s := range survey {
		depth[i], volume[i], area[i] = s.Depth, s.Volume, s.Area
	}

	var g Geometry
	var err error
	if g.SurfaceAreaFit, err = FitPolynomial(depth, area, 1); err != nil {
		return g, fmt.Errorf("surface area %w", err)
	}
	if g.VolumeFit, err = FitPolynomial(depth, volume, 2); err != nil {
		return g, fmt.Errorf("volume %w", err)
	}
	if g.DepthFit, err = FitPolynomial(volume, depth, 2); err != nil {
		return g, fmt.Errorf("depth %w", err)
	}
	return g, nil
}

// Largest |DepthFromVolume(Volume(d)) - d| over n depths spanning [lo, hi]
// and the depth where it occurs
func (g Geometry) RoundTripError(lo, hi float64, n int) (maxErr, atDepth float64) {
	if n < 2 {
		n = 2
	}
	depths := floats.Span(make([]float64, n), lo, hi)
	diffs := make([]float64, n)
	for i, d := range depths {
		diffs[i] = math.Abs(g.DepthFit.Eval(g.VolumeFit.Eval(d)) - d)
	}
	i := floats.MaxIdx(diffs)
	return diffs[i], depths[i]
}
