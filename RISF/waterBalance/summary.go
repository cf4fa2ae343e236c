// waterBalance project summary.go
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
package waterBalance

import (
	"math"
	"sort"
	"time"

	"github.com/blgolden/RISFModel/RISF/lagoon"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Totals and depth statistics over a run
type Summary struct {
	Days        int
	First, Last time.Time

	MeanDepth, StdDepth float64
	MinDepth, MaxDepth  float64 // ft, MinDepth is the fullest the lagoon got

	Evaporation float64 // gal
	Rainfall    float64
	Manure      float64
	Irrigation  float64

	IrrigationDays int // days a pass delivered something
	RiskDays       int
	Events         int // overflow events

	Fields []FieldSummary // by field id
}

// Irrigation delivered to one field and demand it lost to window closings
type FieldSummary struct {
	FieldID   int
	Crop      string
	Delivered float64 // gal
	Forfeited float64 // gal
}

// Summarize a run.  gallonsPerUnit converts forfeited demand to gallons.
func Summarize(results []StepResult, gallonsPerUnit float64) Summary {
	var s Summary
	s.Days = len(results)
	if s.Days == 0 {
		return s
	}
	s.First, s.Last = results[0].Date, results[len(results)-1].Date

	depths := make([]float64, len(results))
	evap := make([]float64, len(results))
	rain := make([]float64, len(results))
	manure := make([]float64, len(results))
	irr := make([]float64, len(results))

	fields := make(map[int]*FieldSummary)
	field := func(id int, crop string) *FieldSummary {
		f, ok := fields[id]
		if !ok {
			f = &FieldSummary{FieldID: id, Crop: crop}
			fields[id] = f
		}
		return f
	}

	for i, r := range results {
		depths[i] = r.Depth
		evap[i] = r.Evaporation
		rain[i] = r.Rainfall
		manure[i] = r.Manure
		irr[i] = r.Irrigation

		switch r.Status {
		case lagoon.OverflowEvent:
			s.Events++
		case lagoon.OverflowRisk:
			s.RiskDays++
		}
		if r.Irrigation > 0 {
			s.IrrigationDays++
		}
		if r.Pass != nil {
			for _, d := range r.Pass.Decisions {
				if d.Volume > 0 {
					field(d.FieldID, d.Crop).Delivered += d.Volume
				}
			}
		}
		for _, f := range r.Forfeited {
			field(f.FieldID, f.Crop).Forfeited += f.Remaining * gallonsPerUnit
		}
	}

	s.MeanDepth, s.StdDepth = stat.MeanStdDev(depths, nil)
	if math.IsNaN(s.StdDepth) {
		s.StdDepth = 0
	}
	s.MinDepth = floats.Min(depths)
	s.MaxDepth = floats.Max(depths)

	s.Evaporation = floats.Sum(evap)
	s.Rainfall = floats.Sum(rain)
	s.Manure = floats.Sum(manure)
	s.Irrigation = floats.Sum(irr)

	for _, f := range fields {
		s.Fields = append(s.Fields, *f)
	}
	sort.Slice(s.Fields, func(i, j int) bool { return s.Fields[i].FieldID < s.Fields[j].FieldID })
	return s
}
