// ensemble_test.go
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
package ensemble

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/blgolden/RISFModel/RISF/climate"
	"github.com/blgolden/RISFModel/RISF/param"
	"github.com/blgolden/RISFModel/RISF/waterBalance"
)

// Winter into spring so the corn and soybean windows open
func testDays(n int, evapRate float64) []waterBalance.Day {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	days := make([]waterBalance.Day, n)
	for i := range days {
		r := climate.Record{Date: start.AddDate(0, 0, i)}
		if i%5 == 4 {
			r.Precip = 0.5
		}
		days[i] = waterBalance.Day{Record: r, EvapRate: evapRate}
	}
	return days
}

func TestEnsemble(t *testing.T) {
	days := testDays(150, 4)
	opt := Options{Samples: 8, Workers: 3, Seed: 1234}

	res, err := Run(param.Default(), days, opt)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Members) != 8 || res.Failed != 0 || res.Err() != nil {
		t.Fatalf("members %d failed %d: %v", len(res.Members), res.Failed, res.Err())
	}
	if len(res.Days) != len(days) {
		t.Fatalf("%d day stats for %d days", len(res.Days), len(days))
	}

	for i, d := range res.Days {
		if !d.Date.Equal(days[i].Date) {
			t.Fatalf("day %d dated %v", i, d.Date)
		}
		if d.MinDepth > d.MeanDepth || d.MeanDepth > d.MaxDepth || d.StdDepth < 0 {
			t.Errorf("day %d: depth stats %+v", i, d)
		}
		if p := d.RiskProbability + d.EventProbability; p < 0 || p > 1 {
			t.Errorf("day %d: probabilities %+v", i, d)
		}
	}

	if len(res.IrrigationQuantiles) != len(Probabilities) {
		t.Fatalf("quantiles = %+v", res.IrrigationQuantiles)
	}
	for i := 1; i < len(res.IrrigationQuantiles); i++ {
		if res.IrrigationQuantiles[i].Value < res.IrrigationQuantiles[i-1].Value {
			t.Errorf("quantiles not increasing: %+v", res.IrrigationQuantiles)
		}
	}
	if res.IrrigationMean <= 0 {
		t.Errorf("mean irrigation = %v", res.IrrigationMean)
	}

	// the worker count must not change the outcome
	opt.Workers = 1
	again, err := Run(param.Default(), days, opt)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Days, again.Days) || !reflect.DeepEqual(res.IrrigationQuantiles, again.IrrigationQuantiles) {
		t.Error("same seed gave a different ensemble")
	}
	for i := range res.Members {
		if res.Members[i].Seed != again.Members[i].Seed {
			t.Errorf("member %d seed %d then %d", i, res.Members[i].Seed, again.Members[i].Seed)
		}
	}
}

func TestSingleMember(t *testing.T) {
	res, err := Run(param.Default(), testDays(30, 4), Options{Samples: 1, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range res.Days {
		if d.StdDepth != 0 || d.MinDepth != d.MaxDepth {
			t.Fatalf("single member spread: %+v", d)
		}
	}
	if res.IrrigationStd != 0 {
		t.Errorf("IrrigationStd = %v", res.IrrigationStd)
	}
}

func TestAllMembersFail(t *testing.T) {
	cfg := param.Default()
	cfg.Herd.Count = 0

	res, err := Run(cfg, testDays(10, 1e6), Options{Samples: 4, Seed: 1})
	if err == nil {
		t.Fatal("expected an error when every member fails")
	}
	var be *waterBalance.BalanceError
	if !errors.As(err, &be) {
		t.Errorf("err = %v, want a *waterBalance.BalanceError", err)
	}
	if res.Failed != 4 || res.Days != nil {
		t.Errorf("result = %+v", res)
	}
}

func TestOptions(t *testing.T) {
	if _, err := Run(param.Default(), testDays(3, 1), Options{Samples: 0}); err == nil {
		t.Error("expected an error for zero samples")
	}
	a, b := Seeds(9, 20), Seeds(9, 20)
	if !reflect.DeepEqual(a, b) {
		t.Error("Seeds not reproducible")
	}
	seen := map[int64]bool{}
	for _, s := range a {
		if seen[s] {
			t.Errorf("seed %d repeated", s)
		}
		seen[s] = true
	}
}
