// scheduler_test.go
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
	"math"
	"math/rand"
	"testing"

	"github.com/blgolden/RISFModel/RISF/climate"
)

func newTestScheduler(t *testing.T, seed int64) *Scheduler {
	t.Helper()
	s, err := NewScheduler(DefaultPolicy(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s
}

func register(t *testing.T, s *Scheduler, w CropWindow) *FieldAllocation {
	t.Helper()
	f, err := s.Register(w)
	if err != nil {
		t.Fatalf("Register(%v): %v", w, err)
	}
	return f
}

func TestFieldNearerCompletionServedFirst(t *testing.T) {
	s := newTestScheduler(t, 1)

	// Y registered first so order cannot come from insertion
	y := register(t, s, CropWindow{Start: "03-01", End: "09-30", FieldID: 2, RootingDepth: 1, ApplicationRate: 62.5, Acreage: 1})
	x := register(t, s, CropWindow{Start: "03-01", End: "09-15", FieldID: 1, RootingDepth: 1, ApplicationRate: 500, Acreage: 1})
	x.Remaining = 50 // 90% delivered
	y.Remaining = 50 // 20% delivered

	p := s.Allocate(30000)

	if len(p.Decisions) != 2 {
		t.Fatalf("got %d decisions, want 2", len(p.Decisions))
	}
	if p.Decisions[0].FieldID != 1 || p.Decisions[1].FieldID != 2 {
		t.Fatalf("order = %d, %d; want field 1 then 2", p.Decisions[0].FieldID, p.Decisions[1].FieldID)
	}
	if p.Decisions[0].Volume != 20000 || p.Decisions[1].Volume != 10000 {
		t.Errorf("volumes = %v, %v; want 20000, 10000", p.Decisions[0].Volume, p.Decisions[1].Volume)
	}
	if p.Total != 30000 {
		t.Errorf("Total = %v, want 30000", p.Total)
	}
	if x.Remaining != 0 {
		t.Errorf("x remaining = %v, want 0", x.Remaining)
	}
	if math.Abs(y.Remaining-25) > 1e-12 {
		t.Errorf("y remaining = %v, want 25", y.Remaining)
	}
}

func TestSmallDemandSkipped(t *testing.T) {
	s := newTestScheduler(t, 1)
	f := register(t, s, CropWindow{Start: "02-15", End: "06-30", FieldID: 3, RootingDepth: 1, ApplicationRate: 1, Acreage: 10})
	if f.Total != 10 || f.Remaining != 10 {
		t.Fatalf("demand = %v/%v, want 10/10", f.Remaining, f.Total)
	}

	p := s.Allocate(1e7)
	if p.Total != 0 {
		t.Errorf("Total = %v, want 0", p.Total)
	}
	if p.Decisions[0].Outcome != BelowMinimum || p.Decisions[0].PerAcre != 400 {
		t.Errorf("decision = %+v", p.Decisions[0])
	}
	if f.Remaining != 10 {
		t.Errorf("remaining changed to %v", f.Remaining)
	}
}

func TestLargeDemandRandomDraw(t *testing.T) {
	window := CropWindow{Start: "09-01", End: "03-31", FieldID: 4, RootingDepth: 1, ApplicationRate: 500, Acreage: 1}

	run := func(seed int64, available float64) (Pass, *FieldAllocation) {
		s := newTestScheduler(t, seed)
		f := register(t, s, window)
		return s.Allocate(available), f
	}

	p, f := run(99, 1e7)
	d := p.Decisions[0]
	if d.PerAcre != 200000 {
		t.Fatalf("per acre = %v, want 200000", d.PerAcre)
	}
	if d.Outcome != RandomDraw {
		t.Fatalf("outcome = %v", d.Outcome)
	}
	if d.Volume < 10001 || d.Volume > 26999 || d.Volume != math.Floor(d.Volume) {
		t.Errorf("draw %v outside [10001, 26999]", d.Volume)
	}
	if math.Abs(f.Remaining-(500-d.Volume/400)) > 1e-9 {
		t.Errorf("remaining = %v after draw %v", f.Remaining, d.Volume)
	}

	again, _ := run(99, 1e7)
	if again.Total != p.Total {
		t.Errorf("same seed gave %v then %v", p.Total, again.Total)
	}

	// a draw larger than the lagoon holds is passed over this round
	short, f := run(99, 5000)
	if short.Total != 0 || short.Decisions[0].Outcome != DrawExceedsVolume {
		t.Errorf("short pass = %+v", short)
	}
	if f.Remaining != 500 {
		t.Errorf("remaining = %v, want 500", f.Remaining)
	}
}

func TestDrawsStayInRange(t *testing.T) {
	s := newTestScheduler(t, 5)
	for i := 0; i < 10000; i++ {
		v := s.draw(0.78)
		if v < 7801 || v > 21059 {
			t.Fatalf("draw %v outside [7801, 21059]", v)
		}
	}
}

func TestExpireForfeitsLeftover(t *testing.T) {
	s := newTestScheduler(t, 1)
	register(t, s, CropWindow{Start: "03-01", End: "09-30", FieldID: 1, RootingDepth: 3, ApplicationRate: 6, Acreage: 46})
	register(t, s, CropWindow{Start: "02-15", End: "06-30", FieldID: 2, RootingDepth: 4, ApplicationRate: 174, Acreage: 0.78})
	register(t, s, CropWindow{Start: "03-15", End: "09-30", FieldID: 3, RootingDepth: 8, ApplicationRate: 40, Acreage: 3.91})

	if got := s.Expire("07-04"); got != nil {
		t.Errorf("Expire on a day with no windows = %v", got)
	}

	gone := s.Expire("09-30")
	if len(gone) != 2 || gone[0].FieldID != 1 || gone[1].FieldID != 3 {
		t.Fatalf("expired = %+v", gone)
	}
	if gone[0].Remaining != gone[0].Total {
		t.Errorf("leftover should be reported: %+v", gone[0])
	}

	active := s.Active()
	if len(active) != 1 || active[0].FieldID != 2 || s.Len() != 1 {
		t.Fatalf("active = %+v", active)
	}

	p := s.Allocate(1e9)
	for _, d := range p.Decisions {
		if d.FieldID == 1 || d.FieldID == 3 {
			t.Errorf("expired field %d still considered", d.FieldID)
		}
	}
}

func TestAllocationNeverExceedsVolumeOrDemand(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := newTestScheduler(t, 12)

	var fields []*FieldAllocation
	delivered := map[*FieldAllocation]float64{}
	for i := 0; i < 12; i++ {
		w := CropWindow{
			Start:           "01-01",
			End:             climate.MonthDay([]string{"05-01", "06-01", "07-01"}[i%3]),
			FieldID:         i,
			RootingDepth:    1 + rng.Float64()*7,
			ApplicationRate: 5 + rng.Float64()*200,
			Acreage:         0.5 + rng.Float64()*40,
		}
		fields = append(fields, register(t, s, w))
	}

	for week := 0; week < 60; week++ {
		before := map[*FieldAllocation]float64{}
		for _, f := range fields {
			before[f] = f.Remaining
		}

		available := rng.Float64() * 400000
		p := s.Allocate(available)
		if p.Total > available+1e-6 {
			t.Fatalf("week %d: allocated %v of %v", week, p.Total, available)
		}

		sum := 0.0
		for _, d := range p.Decisions {
			sum += d.Volume
		}
		if math.Abs(sum-p.Total) > 1e-6 {
			t.Fatalf("decisions sum %v, total %v", sum, p.Total)
		}

		for _, f := range fields {
			if f.Remaining > before[f] {
				t.Fatalf("field %d remaining rose from %v to %v", f.FieldID, before[f], f.Remaining)
			}
			if f.Remaining < 0 {
				t.Fatalf("field %d remaining negative: %v", f.FieldID, f.Remaining)
			}
			delivered[f] += (before[f] - f.Remaining) * 400
			if delivered[f] > f.Total*400+1e-6 {
				t.Fatalf("field %d delivered %v of %v", f.FieldID, delivered[f], f.Total*400)
			}
		}
	}
}

func TestSchedulerValidation(t *testing.T) {
	if _, err := NewScheduler(DefaultPolicy(), nil); err == nil {
		t.Error("expected error for nil source")
	}
	if _, err := NewScheduler(Policy{MinVolPerAcre: 5, MaxVolPerAcre: 5, GallonsPerUnit: 400}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for min == max")
	}
	s := newTestScheduler(t, 1)
	if _, err := s.Register(CropWindow{FieldID: 1, Acreage: 0, RootingDepth: 1, ApplicationRate: 1}); err == nil {
		t.Error("expected error for zero acreage")
	}
}
