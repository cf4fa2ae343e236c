// climate project record.go
//
// Daily weather observations from the station export
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
package climate

import (
	"fmt"
	"sort"
	"time"
)

// One calendar day of climate observations
type Record struct {
	Date      time.Time
	MinTempC  float64 // Minimum air temperature (C)
	AvgTempC  float64 // Average air temperature (C)
	MaxTempC  float64 // Maximum air temperature (C)
	MinRH     float64 // Minimum relative humidity (%)
	MaxRH     float64 // Maximum relative humidity (%)
	SolarRad  float64 // Average solar radiation (W/m2)
	WindSpeed float64 // Average wind speed (m/s)
	Precip    float64 // Total precipitation (in)
}

func (r Record) MonthDay() MonthDay {
	return MonthDayOf(r.Date)
}

// Calendar day of the year without the year, e.g. "03-01"
type MonthDay string

const monthDayLayout = "01-02"

func MonthDayOf(t time.Time) MonthDay {
	return MonthDay(t.Format(monthDayLayout))
}

// Validates s as MM-DD.  Feb 29 is accepted.
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("2006-"+monthDayLayout, "2000-"+s)
	if err != nil {
		return "", fmt.Errorf("bad month-day %q: want MM-DD", s)
	}
	return MonthDayOf(t), nil
}

// Normalise a date to midnight UTC so it can key a map
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Sort records chronologically and reject repeated dates
func Chronological(records []Record) ([]Record, error) {
	out := make([]Record, len(records))
	for i, r := range records {
		r.Date = Day(r.Date)
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	for i := 1; i < len(out); i++ {
		if out[i].Date.Equal(out[i-1].Date) {
			return nil, fmt.Errorf("date %s appears more than once in the climate record", out[i].Date.Format("2006-01-02"))
		}
	}
	return out, nil
}
