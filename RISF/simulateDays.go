// RISF project simulateDays.go
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
	"errors"
	"fmt"
	"math/rand"

	"github.com/blgolden/RISFModel/RISF/lagoon"
	"github.com/blgolden/RISFModel/RISF/logger"
	"github.com/blgolden/RISFModel/RISF/waterBalance"
)

var results []waterBalance.StepResult

// Run the lagoon over the whole climate record
func simulateDays() error {
	logger.Printf("\n\tBeginning simulation for %v days\n", len(ingest.Records))

	rng := rand.New(rand.NewSource(*logger.Seed))

	var err error
	results, err = waterBalance.Run(cfg, ingest.Records, rng, *workers)

	for _, r := range results {
		logDay(r)
	}

	if err != nil {
		var be *waterBalance.BalanceError
		var ge *lagoon.GeometryError
		switch {
		case errors.As(err, &be):
			logger.LogWriterf("lagoon emptied on day %d (%s): %.1f gal", be.Day, be.Date.Format("2006-01-02"), be.Volume)
		case errors.As(err, &ge):
			logger.LogWriterf("lagoon left the calibrated range: %v", ge)
		}
		return fmt.Errorf("simulation stopped after %d days: %w", len(results), err)
	}
	return nil
}

func logDay(r waterBalance.StepResult) {
	date := r.Date.Format("2006-01-02")

	if r.Opened != nil {
		logger.Printf("%s  open   %v, demand %.1f\n", date, *r.Opened, r.Opened.Demand())
	}
	if r.Pass != nil && logger.Verbose() {
		for _, d := range r.Pass.Decisions {
			fmt.Printf("%s  field %d %-9s ratio %.3f  %9.0f gal/ac  %-20v %10.0f gal\n",
				date, d.FieldID, d.Crop, d.Ratio, d.PerAcre, d.Outcome, d.Volume)
		}
	}
	for _, f := range r.Forfeited {
		if f.Remaining > 0 {
			logger.LogWriterf("%s: field %d %s window closed with %.1f of %.1f demand undelivered",
				date, f.FieldID, f.Crop, f.Remaining, f.Total)
		}
		logger.Printf("%s  close  field %d %s, %.1f%% delivered\n", date, f.FieldID, f.Crop, 100*(1-f.Ratio()))
	}
	if r.Status == lagoon.OverflowEvent {
		logger.LogWriterf("%s: %v, depth %.2f ft", date, r.Status, r.Depth)
	}
}
