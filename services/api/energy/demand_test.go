package energy

import (
	"testing"
	"time"

	"github.com/jirapatw/powerview/services/api/meter"
)

func TestBuildDemandSeries_LengthProperty(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	w := mustWindow(ResolveWindow("2024-05-01", "08:00", "10:30", now, time.UTC))

	points := BuildDemandSeries(nil, w)

	wantCore := w.ToMinutes() - w.FromMinutes() + 1 // 151
	wantPad := 24 - w.ToHour                        // hours 11..24
	if len(points) != wantCore+wantPad {
		t.Fatalf("len = %d, want %d", len(points), wantCore+wantPad)
	}
	if points[wantCore].Hour != 11 {
		t.Fatalf("first padding point at hour %v, want 11", points[wantCore].Hour)
	}
	if last := points[len(points)-1]; last.Hour != 24 || last.Watt != 0 {
		t.Fatalf("axis does not close at 24: %+v", last)
	}
}

func TestBuildDemandSeries_ForwardFill(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	w := mustWindow(ResolveWindow("2024-05-01", "08:00", "08:04", now, time.UTC))

	readings := []meter.Reading{
		demandReading(at(8, 1, 10), 100, 40, 110),
		demandReading(at(8, 3, 0), 200, 80, 220),
	}

	points := BuildDemandSeries(readings, w)

	wantWatt := []float64{0, 100, 100, 200, 200}
	for i, want := range wantWatt {
		if points[i].Watt != want {
			t.Fatalf("minute %d watt = %v, want %v (points %+v)", i, points[i].Watt, want, points[:5])
		}
	}
	if points[1].Hour != 8+1.0/60.0 {
		t.Fatalf("fractional hour = %v", points[1].Hour)
	}
}

func TestBuildDemandSeries_LastReadingInMinuteWins(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	w := mustWindow(ResolveWindow("2024-05-01", "09:00", "09:00", now, time.UTC))

	readings := []meter.Reading{
		demandReading(at(9, 0, 5), 10, 0, 10),
		demandReading(at(9, 0, 55), 20, 0, 20),
	}

	points := BuildDemandSeries(readings, w)
	if points[0].Watt != 20 {
		t.Fatalf("watt = %v, want 20", points[0].Watt)
	}
}

func TestBuildDemandSeries_MonotonicHours(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	w := mustWindow(ResolveWindow("2024-05-01", "06:20", "19:10", now, time.UTC))

	points := BuildDemandSeries(nil, w)
	for i := 1; i < len(points); i++ {
		if points[i].Hour < points[i-1].Hour {
			t.Fatalf("hour not monotonic at %d: %v < %v", i, points[i].Hour, points[i-1].Hour)
		}
	}
}

func TestBuildDemandSeries_NilDemandFieldsReadAsZero(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	w := mustWindow(ResolveWindow("2024-05-01", "10:00", "10:01", now, time.UTC))

	readings := []meter.Reading{
		{Timestamp: at(10, 0, 0), SlaveID: 1, DemandW: fp(50)}, // var/va missing
	}

	points := BuildDemandSeries(readings, w)
	if points[0].Watt != 50 || points[0].Var != 0 || points[0].VA != 0 {
		t.Fatalf("point = %+v", points[0])
	}
	// forward fill repeats the partially-missing point as emitted
	if points[1].Watt != 50 || points[1].VA != 0 {
		t.Fatalf("filled point = %+v", points[1])
	}
}
