// lagoon project geometry.go
//
// Depth, volume and surface area of the lagoon.  Each relation is its own
// calibrated fit so Volume and DepthFromVolume are not exact inverses.
// Depth is measured down from the top of the embankment (ft).
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
	"fmt"
	"math"
)

// Polynomial coefficients, constant term first
type Polynomial []float64

func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

func (p Polynomial) String() string {
	s := ""
	for i, c := range p {
		switch i {
		case 0:
			s = fmt.Sprintf("%g", c)
		case 1:
			s += fmt.Sprintf(" %+g*x", c)
		default:
			s += fmt.Sprintf(" %+g*x^%d", c, i)
		}
	}
	return s
}

type Geometry struct {
	SurfaceAreaFit Polynomial // ft^2 from depth
	VolumeFit      Polynomial // gal from depth
	DepthFit       Polynomial // depth from gal
}

// The calibrated fits for the reference lagoon
func DefaultGeometry() Geometry {
	return Geometry{
		SurfaceAreaFit: Polynomial{151254, -387.11},
		VolumeFit:      Polynomial{10994931.66, -94087.98, 119.94},
		DepthFit:       Polynomial{1.4235e+02, -1.5777e-05, 2.6079e-13},
	}
}

func (g Geometry) Validate() error {
	if len(g.SurfaceAreaFit) == 0 || len(g.VolumeFit) == 0 || len(g.DepthFit) == 0 {
		return fmt.Errorf("lagoon geometry needs surface area, volume and depth fits")
	}
	for _, p := range []Polynomial{g.SurfaceAreaFit, g.VolumeFit, g.DepthFit} {
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("non-finite coefficient in fit %v", p)
			}
		}
	}
	return nil
}

// A conversion was given or produced a non-physical value
type GeometryError struct {
	Quantity string  // what was being computed
	Input    float64 // the value converted
	Result   float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("lagoon geometry: %s from %.4f is %.4f (non-physical)", e.Quantity, e.Input, e.Result)
}

func (g Geometry) SurfaceArea(depth float64) (float64, error) {
	a := g.SurfaceAreaFit.Eval(depth)
	if depth < 0 || a < 0 || math.IsNaN(a) {
		return a, &GeometryError{Quantity: "surface area", Input: depth, Result: a}
	}
	return a, nil
}

func (g Geometry) Volume(depth float64) (float64, error) {
	v := g.VolumeFit.Eval(depth)
	if depth < 0 || v < 0 || math.IsNaN(v) {
		return v, &GeometryError{Quantity: "volume", Input: depth, Result: v}
	}
	return v, nil
}

func (g Geometry) DepthFromVolume(volume float64) (float64, error) {
	d := g.DepthFit.Eval(volume)
	if volume < 0 || d < 0 || math.IsNaN(d) {
		return d, &GeometryError{Quantity: "depth", Input: volume, Result: d}
	}
	return d, nil
}
