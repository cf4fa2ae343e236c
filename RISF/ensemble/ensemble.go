// ensemble project ensemble.go
//
// Repeats a lagoon simulation over many random seeds.  Only the irrigation
// draws differ between members so the spread shows how much the outcome
// depends on the part-load dispatch.
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
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/blgolden/RISFModel/RISF/lagoon"
	"github.com/blgolden/RISFModel/RISF/param"
	"github.com/blgolden/RISFModel/RISF/waterBalance"

	"github.com/remeh/sizedwaitgroup"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/cheggaaa/pb.v1"
)

type Options struct {
	Samples  int   // number of members
	Workers  int   // concurrent members, <= 0 is one per CPU
	Seed     int64 // seeds the member seeds
	Progress bool  // show a progress bar on stdout
}

// One simulation of the ensemble
type Member struct {
	Seed    int64
	Summary waterBalance.Summary
	Depths  []float64 // end of day depth
	Status  []lagoon.Status
	Err     error // the run stopped early
}

// Across members for one date
type DayStats struct {
	Date             time.Time
	MeanDepth        float64
	StdDepth         float64
	MinDepth         float64
	MaxDepth         float64
	RiskProbability  float64 // share of members at overflow risk
	EventProbability float64 // share of members overflowing
}

type Quantile struct {
	P     float64
	Value float64
}

// Quantiles reported for the total irrigation
var Probabilities = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

type Result struct {
	Members []Member
	Failed  int // members whose run stopped early

	Days []DayStats // over the members that finished

	IrrigationMean      float64 // gal per member
	IrrigationStd       float64
	IrrigationQuantiles []Quantile
	Elapsed             time.Duration
}

// Seeds draws n member seeds from seed
func Seeds(seed int64, n int) []int64 {
	r := rand.New(rand.NewSource(seed))
	s := make([]int64, n)
	for i := range s {
		s[i] = r.Int63()
	}
	return s
}

// Run simulates every member over the same days and summarises them.
// Members that fail are kept with their error and left out of the
// statistics; it is an error only if no member finishes.
func Run(cfg param.Config, days []waterBalance.Day, opt Options) (*Result, error) {
	if opt.Samples < 1 {
		return nil, fmt.Errorf("ensemble needs at least one sample, have %d", opt.Samples)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	seeds := Seeds(opt.Seed, opt.Samples)
	res := &Result{Members: make([]Member, len(seeds))}

	var bar *pb.ProgressBar
	if opt.Progress {
		bar = pb.StartNew(len(seeds))
		bar.ShowTimeLeft = false
	}

	swg := sizedwaitgroup.New(workers)
	for i := range seeds {
		swg.Add()
		go func(i int) {
			defer swg.Done()
			res.Members[i] = member(cfg, days, seeds[i])
			if bar != nil {
				bar.Increment()
			}
		}(i)
	}
	swg.Wait()
	if bar != nil {
		bar.Finish()
	}

	var done []Member
	for _, m := range res.Members {
		if m.Err != nil {
			res.Failed++
			continue
		}
		done = append(done, m)
	}
	if len(done) == 0 {
		return res, fmt.Errorf("all %d ensemble members failed: %w", len(seeds), res.Members[0].Err)
	}

	res.Days = dayStats(days, done)

	irr := make([]float64, len(done))
	for i, m := range done {
		irr[i] = m.Summary.Irrigation
	}
	res.IrrigationMean, res.IrrigationStd = meanStd(irr)
	sort.Float64s(irr)
	for _, p := range Probabilities {
		res.IrrigationQuantiles = append(res.IrrigationQuantiles, Quantile{P: p, Value: stat.Quantile(p, stat.Empirical, irr, nil)})
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func member(cfg param.Config, days []waterBalance.Day, seed int64) Member {
	m := Member{Seed: seed}
	results, err := waterBalance.RunDays(cfg, days, rand.New(rand.NewSource(seed)))
	if err != nil {
		m.Err = fmt.Errorf("seed %d: %w", seed, err)
		return m
	}
	m.Summary = waterBalance.Summarize(results, cfg.Policy.GallonsPerUnit)
	m.Depths = make([]float64, len(results))
	m.Status = make([]lagoon.Status, len(results))
	for i, r := range results {
		m.Depths[i] = r.Depth
		m.Status[i] = r.Status
	}
	return m
}

func dayStats(days []waterBalance.Day, members []Member) []DayStats {
	n := float64(len(members))
	out := make([]DayStats, len(days))
	depth := make([]float64, len(members))

	for d := range days {
		var risk, event float64
		for i, m := range members {
			depth[i] = m.Depths[d]
			switch m.Status[d] {
			case lagoon.OverflowRisk:
				risk++
			case lagoon.OverflowEvent:
				event++
			}
		}
		s := DayStats{
			Date:             days[d].Date,
			MinDepth:         math.Inf(1),
			MaxDepth:         math.Inf(-1),
			RiskProbability:  risk / n,
			EventProbability: event / n,
		}
		s.MeanDepth, s.StdDepth = meanStd(depth)
		for _, v := range depth {
			s.MinDepth = math.Min(s.MinDepth, v)
			s.MaxDepth = math.Max(s.MaxDepth, v)
		}
		out[d] = s
	}
	return out
}

// Standard deviation is zero for a single member
func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	mean, variance := stat.MeanVariance(x, nil)
	return mean, math.Sqrt(variance)
}

// Errors of the members that failed
func (r *Result) Err() error {
	var errs []error
	for _, m := range r.Members {
		if m.Err != nil {
			errs = append(errs, m.Err)
		}
	}
	return errors.Join(errs...)
}
