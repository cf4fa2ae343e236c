// evap project batch.go
//
// Evaporation for a whole climate record.  Days are independent so the
// record is split into chunks evaluated in parallel.
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
package evap

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/blgolden/RISFModel/RISF/climate"

	"golang.org/x/sync/errgroup"
)

// Intermediate terms and the resulting rate for one day
type Terms struct {
	Date         time.Time
	Delta        float64
	Es           float64 // saturation vapour pressure
	Ea           float64 // actual vapour pressure
	AirDensity   float64
	NetRadiation float64
	WindSpeed    float64 // at the reference height
	Rate         float64 // mm/day
}

type Series []Terms

// Rates keyed by date for joining back onto the climate record
func (s Series) ByDate() map[time.Time]float64 {
	m := make(map[time.Time]float64, len(s))
	for _, t := range s {
		m[climate.Day(t.Date)] = t.Rate
	}
	return m
}

func (s Series) Rates() []float64 {
	r := make([]float64, len(s))
	for i, t := range s {
		r[i] = t.Rate
	}
	return r
}

// Evaluate the model for one day
func Day(r climate.Record) Terms {
	t := Terms{
		Date:         climate.Day(r.Date),
		Delta:        Delta(r.AvgTempC),
		Es:           SaturationVaporPressure(r.MinTempC, r.MaxTempC),
		Ea:           ActualVaporPressure(r.MinTempC, r.MaxTempC, r.MaxRH, r.MinRH),
		AirDensity:   AirDensity(r.AvgTempC),
		NetRadiation: NetRadiation(r.SolarRad),
		WindSpeed:    WindSpeedAtReferenceHeight(r.WindSpeed),
	}
	t.Rate = EvaporationRate(t.Delta, t.Es, t.Ea, t.AirDensity, t.NetRadiation, t.WindSpeed)
	return t
}

const minChunk = 256

// Compute evaluates every record.  Workers <= 0 uses one per CPU.
func Compute(records []climate.Record, workers int) (Series, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make(Series, len(records))

	chunk := (len(records) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for lo := 0; lo < len(records); lo += chunk {
		lo := lo
		hi := lo + chunk
		if hi > len(records) {
			hi = len(records)
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				t := Day(records[i])
				if math.IsNaN(t.Rate) || math.IsInf(t.Rate, 0) {
					return fmt.Errorf("evaporation for %s is not finite (avg temp %.2f C)",
						t.Date.Format("2006-01-02"), records[i].AvgTempC)
				}
				out[i] = t
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
