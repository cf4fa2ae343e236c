// irrigation project scheduler.go
//
// Holds the active field demands and shares lagoon liquid out among them
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
package irrigation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/blgolden/RISFModel/RISF/climate"
)

// Random numbers in [0,1).  *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type Policy struct {
	MinVolPerAcre  float64 // gal/acre, smaller demands are not worth a dispatch
	MaxVolPerAcre  float64 // gal/acre, larger demands get a random part load
	GallonsPerUnit float64 // gallons per unit of crop demand
}

func DefaultPolicy() Policy {
	return Policy{MinVolPerAcre: 10000, MaxVolPerAcre: 27000, GallonsPerUnit: 400}
}

func (p Policy) Validate() error {
	if p.MinVolPerAcre < 0 || p.MaxVolPerAcre <= p.MinVolPerAcre {
		return fmt.Errorf("volume per acre bounds must satisfy 0 <= min < max, have %g and %g", p.MinVolPerAcre, p.MaxVolPerAcre)
	}
	if p.GallonsPerUnit <= 0 {
		return fmt.Errorf("gallons per demand unit must be positive, have %g", p.GallonsPerUnit)
	}
	return nil
}

type Scheduler struct {
	policy Policy
	src    Source

	// end month-day -> allocations closing that day, in registration order.
	// order keeps the end keys in the order they were first inserted.
	order  []climate.MonthDay
	groups map[climate.MonthDay][]*FieldAllocation
}

func NewScheduler(p Policy, src Source) (*Scheduler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("irrigation scheduler needs a random source")
	}
	return &Scheduler{policy: p, src: src, groups: make(map[climate.MonthDay][]*FieldAllocation)}, nil
}

// Open a window.  The new allocation starts with its full demand outstanding.
func (s *Scheduler) Register(w CropWindow) (*FieldAllocation, error) {
	if w.Acreage <= 0 {
		return nil, fmt.Errorf("%v: acreage must be positive, have %g", w, w.Acreage)
	}
	if w.Demand() < 0 {
		return nil, fmt.Errorf("%v: negative demand %g", w, w.Demand())
	}
	f := newFieldAllocation(w)
	if _, ok := s.groups[w.End]; !ok {
		s.order = append(s.order, w.End)
	}
	s.groups[w.End] = append(s.groups[w.End], f)
	return f, nil
}

// Close every window ending on md.  Returns what was removed; any
// remaining demand on them is forfeited.
func (s *Scheduler) Expire(md climate.MonthDay) []FieldAllocation {
	g, ok := s.groups[md]
	if !ok {
		return nil
	}
	delete(s.groups, md)
	for i, k := range s.order {
		if k == md {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	out := make([]FieldAllocation, len(g))
	for i, f := range g {
		out[i] = *f
	}
	return out
}

func (s *Scheduler) active() []*FieldAllocation {
	var fs []*FieldAllocation
	for _, k := range s.order {
		fs = append(fs, s.groups[k]...)
	}
	return fs
}

// Snapshot of the active allocations
func (s *Scheduler) Active() []FieldAllocation {
	fs := s.active()
	out := make([]FieldAllocation, len(fs))
	for i, f := range fs {
		out[i] = *f
	}
	return out
}

func (s *Scheduler) Len() int {
	n := 0
	for _, g := range s.groups {
		n += len(g)
	}
	return n
}

type Outcome int

// What happened to a field in an allocation pass
const (
	BelowMinimum Outcome = iota
	DrawExceedsVolume
	RandomDraw
	FullDemand
)

func (o Outcome) String() string {
	switch o {
	case BelowMinimum:
		return "below minimum"
	case DrawExceedsVolume:
		return "draw exceeds lagoon"
	case RandomDraw:
		return "random draw"
	default:
		return "demand"
	}
}

type Decision struct {
	FieldID int
	Crop    string
	End     climate.MonthDay
	Ratio   float64 // remaining/total when considered
	PerAcre float64 // gal/acre outstanding when considered
	Volume  float64 // gal delivered
	Outcome Outcome
}

type Pass struct {
	Available float64    // lagoon volume offered to the pass
	Total     float64    // gal delivered across all fields
	Decisions []Decision // in the order fields were considered
}

// Allocate runs one pass over the active fields with available gallons.
// Fields with the least outstanding share are served first.
func (s *Scheduler) Allocate(available float64) Pass {
	p := Pass{Available: available}
	gpu := s.policy.GallonsPerUnit

	candidates := s.active()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Ratio() < candidates[j].Ratio()
	})

	for _, f := range candidates {
		d := Decision{
			FieldID: f.FieldID,
			Crop:    f.Crop,
			End:     f.End,
			Ratio:   f.Ratio(),
			PerAcre: f.Remaining * gpu / f.Acreage,
		}

		var vol float64
		switch {
		case d.PerAcre < s.policy.MinVolPerAcre:
			d.Outcome = BelowMinimum
			p.Decisions = append(p.Decisions, d)
			continue

		case d.PerAcre > s.policy.MaxVolPerAcre:
			vol = s.draw(f.Acreage)
			if vol > available {
				d.Outcome = DrawExceedsVolume
				p.Decisions = append(p.Decisions, d)
				continue
			}
			d.Outcome = RandomDraw

		default:
			vol = math.Min(available, f.Remaining*gpu)
			if vol < 0 {
				vol = 0
			}
			d.Outcome = FullDemand
		}

		if vol >= f.Remaining*gpu {
			vol = f.Remaining * gpu
			f.Remaining = 0
		} else {
			f.Remaining -= vol / gpu
		}
		available -= vol
		p.Total += vol

		d.Volume = vol
		p.Decisions = append(p.Decisions, d)
	}
	return p
}

// Whole gallons uniform on [min*acre+1, max*acre-1]
func (s *Scheduler) draw(acre float64) float64 {
	lo := math.Ceil(s.policy.MinVolPerAcre*acre + 1)
	hi := math.Floor(s.policy.MaxVolPerAcre*acre - 1)
	if hi < lo {
		return lo
	}
	return lo + math.Floor(s.src.Float64()*(hi-lo+1))
}
