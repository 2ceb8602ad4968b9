package energy

import (
	"time"

	"github.com/jirapatw/powerview/services/api/meter"
)

func fp(v float64) *float64 { return &v }

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, second, 0, time.UTC)
}

func demandReading(ts time.Time, watt, vr, va float64) meter.Reading {
	return meter.Reading{
		Timestamp: ts,
		SlaveID:   1,
		DemandW:   fp(watt),
		DemandVar: fp(vr),
		DemandVA:  fp(va),
	}
}

func mustWindow(w Window, err error) Window {
	if err != nil {
		panic(err)
	}
	return w
}
