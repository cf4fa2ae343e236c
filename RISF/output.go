// RISF project output.go
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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/blgolden/RISFModel/RISF/lagoon"
	"github.com/blgolden/RISFModel/RISF/logger"
	"github.com/blgolden/RISFModel/RISF/waterBalance"
)

// Column headings of the daily results file
var resultColumns = []string{"Dates", "Vol used for irrigation", "New depths", "Lagoon Volumes", "overFlow flag"}

// One row of the monthly table
type monthTotals struct {
	Month       time.Time
	Days        int
	Evaporation float64
	Rainfall    float64
	Manure      float64
	Irrigation  float64
	MeanDepth   float64
	MinDepth    float64 // fullest
	RiskDays    int
	Events      int
}

// Totals by calendar month in date order
func monthly(results []waterBalance.StepResult) []monthTotals {
	var out []monthTotals
	for _, r := range results {
		m := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if len(out) == 0 || !out[len(out)-1].Month.Equal(m) {
			out = append(out, monthTotals{Month: m, MinDepth: r.Depth})
		}
		t := &out[len(out)-1]
		t.Days++
		t.Evaporation += r.Evaporation
		t.Rainfall += r.Rainfall
		t.Manure += r.Manure
		t.Irrigation += r.Irrigation
		t.MeanDepth += r.Depth
		if r.Depth < t.MinDepth {
			t.MinDepth = r.Depth
		}
		switch r.Status {
		case lagoon.OverflowRisk:
			t.RiskDays++
		case lagoon.OverflowEvent:
			t.Events++
		}
	}
	for i := range out {
		out[i].MeanDepth /= float64(out[i].Days)
	}
	return out
}

func printTables() {
	if *logger.OutputMode != "verbose" && *logger.OutputMode != "table" {
		return
	}

	fmt.Printf("\n          _______________________Volumes (1000 gal)________________   ____Depth (ft)____\n")
	fmt.Printf("Month     Days   Evaporation   Rainfall    Manure  Irrigation      Mean   Fullest   Risk  Events\n")
	for _, t := range monthly(results) {
		fmt.Printf("%-8s %5d %13.1f %10.1f %9.1f %11.1f %9.2f %9.2f %6d %7d\n",
			t.Month.Format("2006-01"),
			t.Days,
			t.Evaporation/1000,
			t.Rainfall/1000,
			t.Manure/1000,
			t.Irrigation/1000,
			t.MeanDepth,
			t.MinDepth,
			t.RiskDays,
			t.Events)
	}

	s := waterBalance.Summarize(results, cfg.Policy.GallonsPerUnit)
	if s.Days == 0 {
		return
	}
	fmt.Printf("\n%s to %s, %d days\n", s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"), s.Days)
	fmt.Printf("Depth: mean %.2f ft (sd %.2f), fullest %.2f ft, lowest %.2f ft\n", s.MeanDepth, s.StdDepth, s.MinDepth, s.MaxDepth)
	fmt.Printf("Irrigated on %d days, %.0f gal in total\n", s.IrrigationDays, s.Irrigation)
	fmt.Printf("Days at overflow risk: %d   Overflow events: %d\n", s.RiskDays, s.Events)

	if len(s.Fields) > 0 {
		fmt.Printf("\nField  Crop        Delivered (gal)   Forfeited (gal)\n")
		for _, f := range s.Fields {
			fmt.Printf("%5d  %-10s %16.0f %17.0f\n", f.FieldID, f.Crop, f.Delivered, f.Forfeited)
		}
	}
	fmt.Println()
}

// Write the daily results to the -out file
func dumpResults() {
	if *outFile == "" {
		return
	}
	if err := saveResults(*outFile, results); err != nil {
		logger.LogWriterFatal("Failed writing " + *outFile + ": " + err.Error())
	}
	logger.Printf("Daily results written to %s\n", *outFile)
}

// The file is closed before returning, also when writing fails, so a fatal
// exit by the caller cannot leave it open.
func saveResults(name string, results []waterBalance.StepResult) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := writeResults(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeResults(w io.Writer, results []waterBalance.StepResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultColumns); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Irrigation, 'f', 2, 64),
			strconv.FormatFloat(r.Depth, 'f', 4, 64),
			strconv.FormatFloat(r.Volume, 'f', 2, 64),
			r.Status.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
