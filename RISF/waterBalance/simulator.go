// waterBalance project simulator.go
//
// The daily lagoon water balance: rain and manure in, evaporation and
// irrigation out, depth carried from one day to the next.
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
package waterBalance

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blgolden/RISFModel/RISF/climate"
	"github.com/blgolden/RISFModel/RISF/evap"
	"github.com/blgolden/RISFModel/RISF/irrigation"
	"github.com/blgolden/RISFModel/RISF/lagoon"
	"github.com/blgolden/RISFModel/RISF/param"
)

// Lagoon at the start of a day.  Only Depth is carried over; the others
// are recomputed from it.
type State struct {
	Depth  float64 // ft below the embankment top
	Volume float64 // gal
	Area   float64 // ft^2
}

// A climate day joined with its evaporation rate
type Day struct {
	climate.Record
	EvapRate float64 // mm/day
}

type StepResult struct {
	Day      int // index from the first simulated day
	Date     time.Time
	MonthDay climate.MonthDay

	StartDepth  float64
	StartVolume float64
	EvapRate    float64 // mm/day

	Evaporation float64 // gal
	Rainfall    float64 // gal
	Manure      float64 // gal
	Irrigation  float64 // gal

	Depth  float64 // end of day
	Volume float64 // end of day
	Status lagoon.Status

	Pass      *irrigation.Pass             // nil when no irrigation was attempted
	Opened    *irrigation.CropWindow       // window registered today
	Forfeited []irrigation.FieldAllocation // windows closed today with their leftover
}

// The balance drove the lagoon volume below zero
type BalanceError struct {
	Day    int
	Date   time.Time
	Volume float64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("water balance: day %d (%s) ends with negative lagoon volume %.1f gal",
		e.Day, e.Date.Format("2006-01-02"), e.Volume)
}

// Join pairs each record with the evaporation computed for its date.  Every
// record needs exactly one rate and every rate a record.
func Join(records []climate.Record, s evap.Series) ([]Day, error) {
	rates := s.ByDate()
	if len(rates) != len(s) {
		return nil, errors.New("evaporation series has repeated dates")
	}

	days := make([]Day, len(records))
	for i, r := range records {
		rate, ok := rates[climate.Day(r.Date)]
		if !ok {
			return nil, fmt.Errorf("no evaporation for %s", r.Date.Format("2006-01-02"))
		}
		delete(rates, climate.Day(r.Date))
		days[i] = Day{Record: r, EvapRate: rate}
	}
	if len(rates) > 0 {
		var extra []string
		for d := range rates {
			extra = append(extra, d.Format("2006-01-02"))
		}
		sort.Strings(extra)
		return nil, fmt.Errorf("evaporation for %s has no climate record", strings.Join(extra, ", "))
	}
	return days, nil
}

type Simulator struct {
	cfg    param.Config
	sched  *irrigation.Scheduler
	manure float64 // gal/day

	day   int
	depth float64
	err   error // set by a failed day; later Steps return it
}

func NewSimulator(cfg param.Config, src irrigation.Source) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	manure, err := cfg.DailyManure()
	if err != nil {
		return nil, err
	}
	sched, err := irrigation.NewScheduler(cfg.Policy, src)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:    cfg.Clone(),
		sched:  sched,
		manure: manure,
		depth:  cfg.InitialDepth,
	}, nil
}

func (s *Simulator) State() (State, error) {
	g := s.cfg.Geometry
	area, err := g.SurfaceArea(s.depth)
	if err != nil {
		return State{}, err
	}
	vol, err := g.Volume(s.depth)
	if err != nil {
		return State{}, err
	}
	return State{Depth: s.depth, Volume: vol, Area: area}, nil
}

// Active field allocations, for reporting
func (s *Simulator) Active() []irrigation.FieldAllocation {
	return s.sched.Active()
}

// Irrigation is considered on every interval'th day when the lagoon is not
// already drawn down and it is not raining.
func (s *Simulator) irrigationDay(d Day) bool {
	return s.day%s.cfg.IrrigationInterval == 0 && s.depth < s.cfg.DStop && d.Precip == 0
}

// Step advances the lagoon by one day.  A failed day may already have
// opened its crop window and drawn down demand, so the simulator is spent
// after one: every later Step returns the same error.
func (s *Simulator) Step(d Day) (StepResult, error) {
	if s.err != nil {
		return StepResult{}, s.err
	}
	res, err := s.step(d)
	if err != nil {
		s.err = err
	}
	return res, err
}

// Err is the error of the day that stopped the simulator, nil while it runs
func (s *Simulator) Err() error {
	return s.err
}

func (s *Simulator) step(d Day) (StepResult, error) {
	md := d.MonthDay()
	res := StepResult{
		Day:        s.day,
		Date:       climate.Day(d.Date),
		MonthDay:   md,
		StartDepth: s.depth,
		EvapRate:   d.EvapRate,
		Manure:     s.manure,
	}
	wrap := func(err error) error {
		return fmt.Errorf("day %d (%s): %w", s.day, res.Date.Format("2006-01-02"), err)
	}

	st, err := s.State()
	if err != nil {
		return res, wrap(err)
	}
	res.StartVolume = st.Volume
	res.Evaporation = d.EvapRate * st.Area * s.cfg.MmToInch
	res.Rainfall = d.Precip * st.Area

	if w, ok := s.cfg.Window(md); ok {
		if _, err := s.sched.Register(w); err != nil {
			return res, wrap(err)
		}
		res.Opened = &w
	}

	if s.irrigationDay(d) {
		p := s.sched.Allocate(st.Volume)
		res.Pass = &p
		res.Irrigation = p.Total
	}

	res.Volume = st.Volume + res.Rainfall + res.Manure - res.Evaporation - res.Irrigation
	if res.Volume < 0 {
		return res, &BalanceError{Day: s.day, Date: res.Date, Volume: res.Volume}
	}

	res.Depth, err = s.cfg.Geometry.DepthFromVolume(res.Volume)
	if err != nil {
		return res, wrap(err)
	}
	res.Status = lagoon.Classify(res.Depth, s.cfg.DRisk)
	res.Forfeited = s.sched.Expire(md)

	s.depth = res.Depth
	s.day++
	return res, nil
}

// Run simulates the whole record.  The results up to a failing day are
// returned along with the error.
func Run(cfg param.Config, records []climate.Record, src irrigation.Source, workers int) ([]StepResult, error) {
	series, err := evap.Compute(records, workers)
	if err != nil {
		return nil, err
	}
	days, err := Join(records, series)
	if err != nil {
		return nil, err
	}
	return RunDays(cfg, days, src)
}

// RunDays simulates days whose evaporation is already known
func RunDays(cfg param.Config, days []Day, src irrigation.Source) ([]StepResult, error) {
	sim, err := NewSimulator(cfg, src)
	if err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(days))
	for _, d := range days {
		r, err := sim.Step(d)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}
