// param project config.go
//
// Everything a lagoon run is configured with.  Built once at startup and
// passed by value to each component.
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
package param

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/blgolden/RISFModel/RISF/animal"
	"github.com/blgolden/RISFModel/RISF/climate"
	"github.com/blgolden/RISFModel/RISF/irrigation"
	"github.com/blgolden/RISFModel/RISF/lagoon"
)

type Config struct {
	Comment string

	InitialDepth       float64 // ft, depth on the first simulated day
	DRisk              float64 // ft, depth at or under which the lagoon is at overflow risk
	DStop              float64 // ft, no irrigation unless depth is under this
	MmToInch           float64 // evaporation rate conversion
	IrrigationInterval int     // days between irrigation decisions

	Herd        animal.Herd
	ManureRates animal.ManureRates

	Geometry lagoon.Geometry
	Policy   irrigation.Policy

	CropWindows []irrigation.CropWindow // sorted by start

	ClimateSkipRows int // station header rows in the climate export
}

// The reference farm: 6120 head feeder-finish over the calibrated lagoon
func Default() Config {
	return Config{
		InitialDepth:       40,
		DRisk:              50.4,
		DStop:              50.4,
		MmToInch:           0.0393701,
		IrrigationInterval: 7,
		Herd:               animal.Herd{Count: 6120, Type: animal.FeederFinish},
		ManureRates:        animal.DefaultManureRates(),
		Geometry:           lagoon.DefaultGeometry(),
		Policy:             irrigation.DefaultPolicy(),
		CropWindows:        DefaultCropWindows(),
		ClimateSkipRows:    12,
	}
}

func DefaultCropWindows() []irrigation.CropWindow {
	w := []irrigation.CropWindow{
		{Start: "03-01", FieldID: 1, End: "09-30", RootingDepth: 3.0, Crop: "bermuda", ApplicationRate: 6.0, Acreage: 46.0},
		{Start: "02-15", FieldID: 2, End: "06-30", RootingDepth: 4.0, Crop: "corn", ApplicationRate: 174.0, Acreage: 0.78},
		{Start: "03-15", FieldID: 3, End: "09-15", RootingDepth: 8.0, Crop: "soybeans", ApplicationRate: 40.0, Acreage: 3.91},
		{Start: "09-01", FieldID: 4, End: "03-31", RootingDepth: 5.0, Crop: "wheat", ApplicationRate: 100.0, Acreage: 1.14},
	}
	sortWindows(w)
	return w
}

func sortWindows(w []irrigation.CropWindow) {
	sort.SliceStable(w, func(i, j int) bool { return w[i].Start < w[j].Start })
}

// The window opening on md, if any
func (c Config) Window(md climate.MonthDay) (irrigation.CropWindow, bool) {
	for _, w := range c.CropWindows {
		if w.Start == md {
			return w, true
		}
	}
	return irrigation.CropWindow{}, false
}

// Gallons of manure entering the lagoon each day
func (c Config) DailyManure() (float64, error) {
	return c.Herd.DailyManure(c.ManureRates)
}

func (c Config) Validate() error {
	var errs []error
	add := func(format string, a ...interface{}) { errs = append(errs, fmt.Errorf(format, a...)) }

	if c.InitialDepth < 0 {
		add("initialDepth must not be negative, have %g", c.InitialDepth)
	}
	if c.DRisk <= lagoon.OverflowDepth {
		add("dRisk must be above the %g ft overflow depth, have %g", lagoon.OverflowDepth, c.DRisk)
	}
	if c.DStop <= 0 {
		add("dStop must be positive, have %g", c.DStop)
	}
	if c.MmToInch <= 0 {
		add("mmToInch must be positive, have %g", c.MmToInch)
	}
	if c.IrrigationInterval < 1 {
		add("irrigationInterval must be at least 1 day, have %d", c.IrrigationInterval)
	}
	folded := make(map[string]string)
	for _, k := range c.ManureRates.Types() {
		l := strings.ToLower(k)
		if o, ok := folded[l]; ok {
			add("manure table lists %q and %q, which differ only in case", o, k)
		}
		folded[l] = k
	}
	if _, err := c.DailyManure(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Geometry.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Policy.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.ClimateSkipRows < 0 {
		add("climateSkipRows must not be negative, have %d", c.ClimateSkipRows)
	}

	seen := make(map[climate.MonthDay]bool)
	for _, w := range c.CropWindows {
		if seen[w.Start] {
			add("more than one crop window starts on %s", w.Start)
		}
		seen[w.Start] = true
		if w.Start == w.End {
			add("%v opens and closes on the same day", w)
		}
		if w.Acreage <= 0 {
			add("%v: acreage must be positive", w)
		}
		if w.RootingDepth < 0 || w.ApplicationRate < 0 {
			add("%v: rooting depth and application rate must not be negative", w)
		}
	}

	return errors.Join(errs...)
}

// Copy with its own tables so callers cannot reach back into c
func (c Config) Clone() Config {
	d := c
	d.ManureRates = c.ManureRates.Clone()
	d.CropWindows = append([]irrigation.CropWindow(nil), c.CropWindows...)
	d.Geometry = lagoon.Geometry{
		SurfaceAreaFit: append(lagoon.Polynomial(nil), c.Geometry.SurfaceAreaFit...),
		VolumeFit:      append(lagoon.Polynomial(nil), c.Geometry.VolumeFit...),
		DepthFit:       append(lagoon.Polynomial(nil), c.Geometry.DepthFit...),
	}
	return d
}
