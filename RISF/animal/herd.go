// herd project herd.go
// Defines the herd housed over the lagoon
// Population is static over the simulation - no births, deaths or sales
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
package animal

import "fmt"

type Herd struct {
	Count int  // Head of animals on the farm
	Type  Type // Production phase - e.g., Feeder-finish
}

// Gallons of manure the herd adds to the lagoon each day
func (h Herd) DailyManure(rates ManureRates) (float64, error) {
	if h.Count < 0 {
		return 0, fmt.Errorf("negative herd size %d", h.Count)
	}
	r, err := rates.Rate(h.Type)
	if err != nil {
		return 0, err
	}
	return float64(h.Count) * r, nil
}

func (h Herd) String() string {
	return fmt.Sprintf("%d head %s", h.Count, h.Type)
}
