package energy

import (
	"github.com/jirapatw/powerview/services/api/meter"
)

// DemandPoint is one tick of the demand chart. Hour carries the minute as a
// fraction so the chart has a continuous x axis in [0, 24].
type DemandPoint struct {
	Hour float64 `json:"hour"`
	Watt float64 `json:"watt"`
	Var  float64 `json:"var"`
	VA   float64 `json:"va"`
}

// demandCarry is the forward-fill accumulator: the last emitted demand values,
// repeated for minutes with no reading.
type demandCarry struct {
	watt float64
	vr   float64
	va   float64
}

// BuildDemandSeries emits one point per whole minute of the window, taking the
// demand fields of the last reading inside each minute and forward-filling
// minutes without one. After the window it pads one zero point per whole hour
// up to 24 so a rendered axis always closes at the day boundary.
func BuildDemandSeries(readings []meter.Reading, w Window) []DemandPoint {
	// Index rows by minute-of-day, last row wins (input is ts ascending).
	byMinute := make(map[int]*meter.Reading, len(readings))
	for i := range readings {
		ts := readings[i].Timestamp
		byMinute[ts.Hour()*60+ts.Minute()] = &readings[i]
	}

	from, to := w.FromMinutes(), w.ToMinutes()
	points := make([]DemandPoint, 0, to-from+1+(24-w.ToHour))

	var carry demandCarry
	for m := from; m <= to; m++ {
		if r, ok := byMinute[m]; ok {
			carry = demandCarry{
				watt: meter.Coerce(r.DemandW),
				vr:   meter.Coerce(r.DemandVar),
				va:   meter.Coerce(r.DemandVA),
			}
		}
		points = append(points, DemandPoint{
			Hour: float64(m/60) + float64(m%60)/60.0,
			Watt: carry.watt,
			Var:  carry.vr,
			VA:   carry.va,
		})
	}

	for h := w.ToHour + 1; h <= 24; h++ {
		points = append(points, DemandPoint{Hour: float64(h)})
	}

	return points
}
