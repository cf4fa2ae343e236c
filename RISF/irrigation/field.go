// irrigation project field.go
//
// Crop windows and the demand they place on the lagoon
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
package irrigation

import (
	"fmt"

	"github.com/blgolden/RISFModel/RISF/climate"
)

// One row of the crop schedule
type CropWindow struct {
	Start           climate.MonthDay // window opens
	End             climate.MonthDay // window closes and leftover demand is forfeited
	FieldID         int
	RootingDepth    float64
	Crop            string
	ApplicationRate float64 // nitrogen/application rate
	Acreage         float64
}

// Demand for the whole window in demand units (gallons / GallonsPerUnit)
func (w CropWindow) Demand() float64 {
	return w.RootingDepth * w.ApplicationRate * w.Acreage
}

func (w CropWindow) String() string {
	return fmt.Sprintf("field %d %s %s..%s", w.FieldID, w.Crop, w.Start, w.End)
}

// One field's demand for one active window
type FieldAllocation struct {
	FieldID   int
	Crop      string
	Acreage   float64
	Total     float64 // demand units
	Remaining float64 // demand units, never above Total
	End       climate.MonthDay
	Started   climate.MonthDay
}

func newFieldAllocation(w CropWindow) *FieldAllocation {
	d := w.Demand()
	return &FieldAllocation{
		FieldID:   w.FieldID,
		Crop:      w.Crop,
		Acreage:   w.Acreage,
		Total:     d,
		Remaining: d,
		End:       w.End,
		Started:   w.Start,
	}
}

// Share of the window's demand still outstanding
func (f *FieldAllocation) Ratio() float64 {
	if f.Total == 0 {
		return 0
	}
	return f.Remaining / f.Total
}

func (f *FieldAllocation) Delivered() float64 {
	return f.Total - f.Remaining
}
