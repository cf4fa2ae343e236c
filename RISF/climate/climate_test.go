// climate_test.go
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
	"strings"
	"testing"
	"time"
)

const header = "Date,Average Air Temperature (C),Maximum Air Temperature (C),Minimum Air Temperature (C),Maximum Relative Humidity (%),Minimum Relative Humidity (%),Total Precipitation (in),Average Solar Radiation (W/m2),Average Wind Speed (mps)\n"

func TestReadDropsInvalidDaysInLockStep(t *testing.T) {
	data := "Station: Clinton\nElevation: 48 m\n" + header +
		"2020-03-02,11,18,4,95,40,0,180,2.1\n" +
		"2020-03-01,10,16,3,90,35,0.5,150,1.8\n" +
		"2020-03-03,#VALUE!,20,#VALUE!,80,30,0,200,2.5\n" +
		"2020-03-04,,22,6,85,38,0,210,3.0\n" +
		"\n"

	in, err := Read(strings.NewReader(data), ReadOptions{SkipRows: 2})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(in.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(in.Records))
	}
	if len(in.Dropped) != 1 {
		t.Fatalf("got %d dropped, want 1: %v", len(in.Dropped), in.Dropped)
	}
	if in.Dropped[0].Row != 6 || in.Dropped[0].Field != ColMaxTempC && in.Dropped[0].Field != ColMinTempC {
		t.Errorf("unexpected drop %v", in.Dropped[0])
	}

	wantDates := []string{"2020-03-01", "2020-03-02", "2020-03-04"}
	for i, r := range in.Records {
		if got := r.Date.Format("2006-01-02"); got != wantDates[i] {
			t.Errorf("record %d date = %s, want %s", i, got, wantDates[i])
		}
	}

	// the station average (10) wins over the 9.5 C midpoint
	first := in.Records[0]
	if first.AvgTempC != 10 || first.Precip != 0.5 || first.WindSpeed != 1.8 || first.MinRH != 35 || first.MaxRH != 90 {
		t.Errorf("fields misread: %+v", first)
	}

	// blank average temperature is derived, not dropped
	last := in.Records[2]
	if last.AvgTempC != 14 {
		t.Errorf("derived average = %v, want 14", last.AvgTempC)
	}
	if in.Derived != 1 {
		t.Errorf("Derived = %d, want 1", in.Derived)
	}
}

func TestReadWithoutAverageColumn(t *testing.T) {
	data := "Date,Maximum Air Temperature (C),Minimum Air Temperature (C),Maximum Relative Humidity (%),Minimum Relative Humidity (%),Total Precipitation (in),Average Solar Radiation (W/m2),Average Wind Speed (mps)\n" +
		"3/1/2020,16,4,90,35,0,150,1.8\n"
	in, err := Read(strings.NewReader(data), ReadOptions{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(in.Records) != 1 || in.Records[0].AvgTempC != 10 {
		t.Fatalf("unexpected records %+v", in.Records)
	}
	if in.Derived != 1 {
		t.Errorf("Derived = %d, want 1", in.Derived)
	}
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Date,Total Precipitation (in)\n2020-01-01,0\n"), ReadOptions{})
	if err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestReadDuplicateDate(t *testing.T) {
	data := header +
		"2020-03-01,10,16,3,90,35,0,150,1.8\n" +
		"2020-03-01,10,16,3,90,35,0,150,1.8\n"
	if _, err := Read(strings.NewReader(data), ReadOptions{}); err == nil {
		t.Fatal("expected duplicate date error")
	}
}

func TestMonthDay(t *testing.T) {
	d := time.Date(2021, time.September, 30, 13, 0, 0, 0, time.UTC)
	if MonthDayOf(d) != "09-30" {
		t.Errorf("MonthDayOf = %q", MonthDayOf(d))
	}

	tests := []struct {
		in      string
		want    MonthDay
		wantErr bool
	}{
		{"03-01", "03-01", false},
		{"3-1", "", true},
		{"02-29", "02-29", false},
		{"13-01", "", true},
		{"bermuda", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMonthDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonthDay(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMonthDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
