// climate project read.go
//
// Reads the weather station's daily export (csv)
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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column headings in the station export
const (
	ColDate      = "Date"
	ColAvgTempC  = "Average Air Temperature (C)"
	ColMaxTempC  = "Maximum Air Temperature (C)"
	ColMinTempC  = "Minimum Air Temperature (C)"
	ColMaxRH     = "Maximum Relative Humidity (%)"
	ColMinRH     = "Minimum Relative Humidity (%)"
	ColPrecip    = "Total Precipitation (in)"
	ColSolarRad  = "Average Solar Radiation (W/m2)"
	ColWindSpeed = "Average Wind Speed (mps)"
)

var requiredColumns = []string{ColDate, ColMinTempC, ColMaxTempC, ColMinRH, ColMaxRH, ColSolarRad, ColWindSpeed, ColPrecip}

// Spreadsheet error marker the export writes for a missing value
const InvalidMarker = "#VALUE!"

var dateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006", "2006-01-02 15:04:05", "2006/01/02"}

type ReadOptions struct {
	SkipRows int // station header lines before the column headings
}

// A day left out of the record and why
type Dropped struct {
	Row   int // 1 based line in the file
	Date  string
	Field string
	Value string
}

func (d Dropped) String() string {
	return fmt.Sprintf("row %d (%s): %s = %q", d.Row, d.Date, d.Field, d.Value)
}

// Evaporation is driven by the station's own daily average temperature
// when the export carries that column, and that value is kept even where
// it differs from the (min+max)/2 midpoint.  Days without a station
// average fall back to the midpoint and are counted in Derived.
type Ingest struct {
	Records []Record  // retained days, chronological
	Dropped []Dropped // days excluded for non-numeric values
	Derived int       // days whose average temperature was taken as (min+max)/2
}

func ReadFile(name string, opt ReadOptions) (*Ingest, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	in, err := Read(f, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return in, nil
}

// Read parses the export.  A day with any non-numeric value is dropped as a
// whole so every per-day quantity derived later stays on the same date.
func Read(r io.Reader, opt ReadOptions) (*Ingest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(raw) <= opt.SkipRows {
		return nil, fmt.Errorf("no column headings after %d skipped rows", opt.SkipRows)
	}

	col := make(map[string]int)
	for i, h := range raw[opt.SkipRows] {
		col[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("column %q not found", c)
		}
	}
	avgCol, hasAvg := col[ColAvgTempC]

	in := &Ingest{}
	var records []Record

	for i := opt.SkipRows + 1; i < len(raw); i++ {
		row := raw[i]
		line := i + 1

		cell := func(name string) string {
			j := col[name]
			if j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		if isBlank(row) {
			continue
		}

		date := cell(ColDate)
		d, err := parseDate(date)
		if err != nil {
			in.Dropped = append(in.Dropped, Dropped{Row: line, Date: date, Field: ColDate, Value: date})
			continue
		}

		var rec Record
		rec.Date = d

		fields := []struct {
			name string
			dst  *float64
		}{
			{ColMinTempC, &rec.MinTempC},
			{ColMaxTempC, &rec.MaxTempC},
			{ColMinRH, &rec.MinRH},
			{ColMaxRH, &rec.MaxRH},
			{ColSolarRad, &rec.SolarRad},
			{ColWindSpeed, &rec.WindSpeed},
			{ColPrecip, &rec.Precip},
		}

		ok := true
		for _, f := range fields {
			v, err := parseValue(cell(f.name))
			if err != nil {
				in.Dropped = append(in.Dropped, Dropped{Row: line, Date: date, Field: f.name, Value: cell(f.name)})
				ok = false
				break
			}
			*f.dst = v
		}
		if !ok {
			continue
		}

		rec.AvgTempC = (rec.MinTempC + rec.MaxTempC) / 2
		derived := true
		if hasAvg && avgCol < len(row) && strings.TrimSpace(row[avgCol]) != "" {
			v, err := parseValue(row[avgCol])
			if err != nil {
				in.Dropped = append(in.Dropped, Dropped{Row: line, Date: date, Field: ColAvgTempC, Value: row[avgCol]})
				continue
			}
			rec.AvgTempC = v
			derived = false
		}
		if derived {
			in.Derived++
		}

		records = append(records, rec)
	}

	in.Records, err = Chronological(records)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == InvalidMarker {
		return 0, fmt.Errorf("missing value %q", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
