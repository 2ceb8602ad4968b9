package energy

import (
	"math"

	"github.com/jirapatw/powerview/services/api/meter"
	"github.com/jirapatw/powerview/services/api/tariff"
)

// TOU schedule constants. On-peak runs 09:00 inclusive to 22:00 exclusive
// every day; demand is split 20/80 between on- and off-peak irrespective of
// when the maximum was measured. Both come from the tariff schedule this
// service bills against and are not user-configurable.
const (
	onPeakStartHour = 9
	onPeakEndHour   = 22

	onPeakDemandShare  = 0.2
	offPeakDemandShare = 0.8
)

// ChargeRecord is the tariff breakdown for one meter over a billing window.
// Monetary fields are rounded to 2 decimals; demand and energy fields keep
// full precision.
type ChargeRecord struct {
	MeterName string `json:"meterName"`
	Class     string `json:"class"`

	DemandW   float64 `json:"demandW"`
	DemandVar float64 `json:"demandVar"`
	DemandVA  float64 `json:"demandVA"`

	OffPeakKWh float64 `json:"offPeakKWh"`
	OnPeakKWh  float64 `json:"onPeakKWh"`
	TotalKWh   float64 `json:"totalKWh"`

	WhCharge     float64 `json:"whCharge"`
	FT           float64 `json:"ft"`
	DemandCharge float64 `json:"demandCharge"`
	Surcharge    float64 `json:"surcharge"`
	Total        float64 `json:"total"`
	VAT          float64 `json:"vat"`
	GrandTotal   float64 `json:"grandTotal"`
}

// Calculate bills one meter's readings against the rate sheet. Readings with a
// nil register or demand field simply don't participate in that quantity's
// extremes. MeterName and Class are left for the caller.
func Calculate(readings []meter.Reading, t tariff.Tariff) ChargeRecord {
	rec := ChargeRecord{}

	rec.DemandW = maxField(readings, meter.FieldDemandW)
	rec.DemandVar = maxField(readings, meter.FieldDemandVar)
	rec.DemandVA = maxField(readings, meter.FieldDemandVA)

	rec.TotalKWh = registerSpan(readings, nil)
	rec.OnPeakKWh = registerSpan(readings, func(h int) bool { return onPeak(h) })
	rec.OffPeakKWh = registerSpan(readings, func(h int) bool { return !onPeak(h) })

	onPeakWh := rec.OnPeakKWh * t.OnPeakRate
	offPeakWh := rec.OffPeakKWh * t.OffPeakRate
	whCharge := onPeakWh + offPeakWh

	demandCharge := rec.DemandW*onPeakDemandShare*t.DemandRate +
		rec.DemandW*offPeakDemandShare*t.DemandRate

	// VA/W ratio; a dead window has no defined ratio and never incurs the
	// surcharge.
	ratio := 0.0
	if rec.DemandW > 0 {
		ratio = rec.DemandVA / rec.DemandW
	}
	surcharge := 0.0
	if ratio > t.PowerFactor.Threshold {
		surcharge = (ratio - t.PowerFactor.Threshold) * t.PowerFactor.Rate
	}

	ft := (rec.DemandW + rec.TotalKWh) * t.FTRate
	total := whCharge + demandCharge + surcharge
	vat := (total - ft) * t.VATRate
	grand := vat + (total - ft)

	rec.WhCharge = round2(whCharge)
	rec.FT = round2(ft)
	rec.DemandCharge = round2(demandCharge)
	rec.Surcharge = round2(surcharge)
	rec.Total = round2(total)
	rec.VAT = round2(vat)
	rec.GrandTotal = round2(grand)
	return rec
}

func onPeak(hour int) bool {
	return hour >= onPeakStartHour && hour < onPeakEndHour
}

// maxField returns the maximum non-nil value of a field, 0 when none exists.
func maxField(readings []meter.Reading, f meter.Field) float64 {
	max := 0.0
	for i := range readings {
		if v := meter.Value(&readings[i], f); v != nil && *v > max {
			max = *v
		}
	}
	return max
}

// registerSpan returns max-min of the cumulative import register over readings
// whose hour passes the filter (nil filter keeps everything). Readings without
// a register value are skipped before the extremes are taken, so a sparse
// window still bills only consumed energy.
func registerSpan(readings []meter.Reading, hourFilter func(int) bool) float64 {
	var lo, hi float64
	seen := false
	for i := range readings {
		if hourFilter != nil && !hourFilter(readings[i].Timestamp.Hour()) {
			continue
		}
		v := readings[i].ImportKWh
		if v == nil {
			continue
		}
		if !seen {
			lo, hi = *v, *v
			seen = true
			continue
		}
		if *v < lo {
			lo = *v
		}
		if *v > hi {
			hi = *v
		}
	}
	if !seen {
		return 0
	}
	return hi - lo
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
