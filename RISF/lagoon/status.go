// lagoon project status.go
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

type Status int

// Severity of the lagoon level after a day's update
const (
	Normal Status = iota
	OverflowRisk
	OverflowEvent
)

// Labels used in the results workbook
func (s Status) String() string {
	switch s {
	case OverflowEvent:
		return "Lagoon overflow event"
	case OverflowRisk:
		return "overflow risk"
	default:
		return "N/A"
	}
}

// Depth at or under this many feet of freeboard is an overflow
const OverflowDepth = 1.0

// Classify the day's resulting depth.  Depends on nothing but today.
func Classify(depth, dRisk float64) Status {
	switch {
	case depth <= OverflowDepth:
		return OverflowEvent
	case depth <= dRisk:
		return OverflowRisk
	default:
		return Normal
	}
}
