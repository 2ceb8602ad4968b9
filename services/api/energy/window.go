package energy

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeRange = errors.New("invalid time range")
var ErrMissingDate = errors.New("missing date")

// Window is a resolved aggregation window: absolute bounds for the store query
// plus the clock span the minute/hour aggregators walk.
type Window struct {
	Start time.Time
	End   time.Time

	FromHour   int
	FromMinute int
	ToHour     int
	ToMinute   int
}

// FromMinutes returns the window start as minute-of-day.
func (w Window) FromMinutes() int { return w.FromHour*60 + w.FromMinute }

// ToMinutes returns the window end as minute-of-day.
func (w Window) ToMinutes() int { return w.ToHour*60 + w.ToMinute }

// ResolveWindow normalizes a dashboard request into a Window. date defaults to
// today, from to 00:00 and to to the current clock time, all in loc. The window
// is inclusive on both ends: End sits at second 59 of the "to" minute so any
// reading inside that minute matches.
func ResolveWindow(date, from, to string, now time.Time, loc *time.Location) (Window, error) {
	now = now.In(loc)

	day := now
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: bad date %q", ErrInvalidTimeRange, date)
		}
		day = parsed
	}

	if from == "" {
		from = "00:00"
	}
	if to == "" {
		to = now.Format("15:04")
	}

	fh, fm, err := parseClock(from)
	if err != nil {
		return Window{}, err
	}
	th, tm, err := parseClock(to)
	if err != nil {
		return Window{}, err
	}

	if fh*60+fm > th*60+tm {
		return Window{}, fmt.Errorf("%w: from %s after to %s", ErrInvalidTimeRange, from, to)
	}

	return Window{
		Start:      time.Date(day.Year(), day.Month(), day.Day(), fh, fm, 0, 0, loc),
		End:        time.Date(day.Year(), day.Month(), day.Day(), th, tm, 59, 0, loc),
		FromHour:   fh,
		FromMinute: fm,
		ToHour:     th,
		ToMinute:   tm,
	}, nil
}

// ResolveChargeWindow normalizes a billing-report request. Both dates are
// required; times default to the whole day.
func ResolveChargeWindow(dateFrom, dateTo, timeFrom, timeTo string, loc *time.Location) (Window, error) {
	if dateFrom == "" || dateTo == "" {
		return Window{}, fmt.Errorf("%w: dateFrom and dateTo are required", ErrMissingDate)
	}

	dayFrom, err := time.ParseInLocation("2006-01-02", dateFrom, loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: bad dateFrom %q", ErrInvalidTimeRange, dateFrom)
	}
	dayTo, err := time.ParseInLocation("2006-01-02", dateTo, loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: bad dateTo %q", ErrInvalidTimeRange, dateTo)
	}

	if timeFrom == "" {
		timeFrom = "00:00"
	}
	if timeTo == "" {
		timeTo = "23:59"
	}

	fh, fm, err := parseClock(timeFrom)
	if err != nil {
		return Window{}, err
	}
	th, tm, err := parseClock(timeTo)
	if err != nil {
		return Window{}, err
	}

	w := Window{
		Start:      time.Date(dayFrom.Year(), dayFrom.Month(), dayFrom.Day(), fh, fm, 0, 0, loc),
		End:        time.Date(dayTo.Year(), dayTo.Month(), dayTo.Day(), th, tm, 59, 0, loc),
		FromHour:   fh,
		FromMinute: fm,
		ToHour:     th,
		ToMinute:   tm,
	}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("%w: %s %s after %s %s", ErrInvalidTimeRange, dateFrom, timeFrom, dateTo, timeTo)
	}
	return w, nil
}

func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad clock time %q", ErrInvalidTimeRange, s)
	}
	return t.Hour(), t.Minute(), nil
}
