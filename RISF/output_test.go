// output_test.go
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
package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/blgolden/RISFModel/RISF/lagoon"
	"github.com/blgolden/RISFModel/RISF/waterBalance"
)

func day(m time.Month, d int, depth, irrigation float64, s lagoon.Status) waterBalance.StepResult {
	return waterBalance.StepResult{
		Date:        time.Date(2019, m, d, 0, 0, 0, 0, time.UTC),
		Depth:       depth,
		Volume:      7e6,
		Irrigation:  irrigation,
		Evaporation: 100,
		Manure:      10,
		Status:      s,
	}
}

func TestWriteResults(t *testing.T) {
	rs := []waterBalance.StepResult{
		day(time.March, 1, 39.6, 0, lagoon.OverflowRisk),
		day(time.March, 2, 0.75, 12500.5, lagoon.OverflowEvent),
		day(time.March, 3, 52, 0, lagoon.Normal),
	}

	var buf bytes.Buffer
	if err := writeResults(&buf, rs); err != nil {
		t.Fatalf("writeResults: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rows[0], resultColumns) {
		t.Errorf("header = %q", rows[0])
	}
	want := [][]string{
		{"2019-03-01", "0.00", "39.6000", "7000000.00", "overflow risk"},
		{"2019-03-02", "12500.50", "0.7500", "7000000.00", "Lagoon overflow event"},
		{"2019-03-03", "0.00", "52.0000", "7000000.00", "N/A"},
	}
	if !reflect.DeepEqual(rows[1:], want) {
		t.Errorf("rows = %q", rows[1:])
	}
}

func TestMonthly(t *testing.T) {
	rs := []waterBalance.StepResult{
		day(time.January, 30, 40, 0, lagoon.OverflowRisk),
		day(time.January, 31, 38, 500, lagoon.OverflowRisk),
		day(time.February, 1, 0.5, 0, lagoon.OverflowEvent),
	}

	m := monthly(rs)
	if len(m) != 2 {
		t.Fatalf("%d months", len(m))
	}
	jan := m[0]
	if jan.Days != 2 || jan.Irrigation != 500 || jan.MeanDepth != 39 || jan.MinDepth != 38 || jan.RiskDays != 2 || jan.Evaporation != 200 {
		t.Errorf("January = %+v", jan)
	}
	if m[1].Events != 1 || m[1].Month.Month() != time.February {
		t.Errorf("February = %+v", m[1])
	}
}

func TestSaveResults(t *testing.T) {
	results := []waterBalance.StepResult{
		day(time.March, 1, 40, 0, lagoon.Normal),
		day(time.March, 2, 39.5, 1200, lagoon.Normal),
	}
	name := filepath.Join(t.TempDir(), "daily.csv")
	if err := saveResults(name, results); err != nil {
		t.Fatalf("saveResults: %v", err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(results)+1 || !reflect.DeepEqual(rows[0], resultColumns) {
		t.Errorf("saved %d rows, header %v", len(rows), rows[0])
	}

	if err := saveResults(filepath.Join(t.TempDir(), "missing", "daily.csv"), results); err == nil {
		t.Error("saving into a missing directory should fail")
	}
}
