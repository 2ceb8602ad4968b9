package energy

import (
	"math"
	"reflect"
	"testing"

	"github.com/jirapatw/powerview/services/api/meter"
	"github.com/jirapatw/powerview/services/api/tariff"
)

func flatTariff() tariff.Tariff {
	return tariff.Tariff{
		OnPeakRate:  2,
		OffPeakRate: 1,
		DemandRate:  10,
		FTRate:      -0.1,
		VATRate:     0.07,
		PowerFactor: tariff.PowerFactorRule{Threshold: 728, Rate: 56.07},
	}
}

func registerReading(hour, minute int, importKWh float64) meter.Reading {
	return meter.Reading{
		Timestamp: at(hour, minute, 0),
		SlaveID:   1,
		ImportKWh: fp(importKWh),
	}
}

func TestCalculate_OnOffPeakSplit(t *testing.T) {
	t.Parallel()

	lead := registerReading(9, 0, 100)
	lead.DemandW = fp(100)
	lead.DemandVar = fp(0)
	lead.DemandVA = fp(100)

	readings := []meter.Reading{
		lead,
		registerReading(21, 59, 140),
		registerReading(22, 0, 142),
		registerReading(23, 0, 150),
	}

	rec := Calculate(readings, flatTariff())

	if rec.OnPeakKWh != 40 {
		t.Fatalf("onPeakKWh = %v, want 40", rec.OnPeakKWh)
	}
	if rec.OffPeakKWh != 8 {
		t.Fatalf("offPeakKWh = %v, want 8", rec.OffPeakKWh)
	}
	if rec.TotalKWh != 50 {
		t.Fatalf("totalKWh = %v, want 50", rec.TotalKWh)
	}

	// whCharge = 40*2 + 8*1; demandCharge = 100*(0.2+0.8)*10
	if rec.WhCharge != 88 {
		t.Fatalf("whCharge = %v, want 88", rec.WhCharge)
	}
	if rec.DemandCharge != 1000 {
		t.Fatalf("demandCharge = %v, want 1000", rec.DemandCharge)
	}
	if rec.Surcharge != 0 {
		t.Fatalf("surcharge = %v, want 0", rec.Surcharge)
	}
	if rec.FT != -15 { // (100 demand + 50 kWh) * -0.1
		t.Fatalf("ft = %v, want -15", rec.FT)
	}
	if rec.Total != 1088 {
		t.Fatalf("total = %v, want 1088", rec.Total)
	}
	if rec.VAT != 77.21 { // (1088 - (-15)) * 0.07
		t.Fatalf("vat = %v, want 77.21", rec.VAT)
	}
	if rec.GrandTotal != 1180.21 {
		t.Fatalf("grandTotal = %v, want 1180.21", rec.GrandTotal)
	}
}

func TestCalculate_DemandMaximaAcrossWindow(t *testing.T) {
	t.Parallel()

	readings := []meter.Reading{
		demandReading(at(1, 0, 0), 80, 10, 90),
		demandReading(at(2, 0, 0), 120, 5, 121),
		demandReading(at(3, 0, 0), 60, 30, 70),
	}

	rec := Calculate(readings, flatTariff())
	if rec.DemandW != 120 || rec.DemandVar != 30 || rec.DemandVA != 121 {
		t.Fatalf("maxima = %v/%v/%v", rec.DemandW, rec.DemandVar, rec.DemandVA)
	}
}

func TestCalculate_ZeroDemandNeverSurchargesOrPanics(t *testing.T) {
	t.Parallel()

	rates := flatTariff()
	rates.PowerFactor.Threshold = 0.5 // would fire on any real ratio

	readings := []meter.Reading{
		{Timestamp: at(10, 0, 0), SlaveID: 1, DemandVA: fp(50), ImportKWh: fp(5)},
	}

	rec := Calculate(readings, rates)
	if rec.Surcharge != 0 {
		t.Fatalf("surcharge = %v, want 0", rec.Surcharge)
	}
	for _, v := range []float64{rec.Total, rec.VAT, rec.GrandTotal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite monetary value in %+v", rec)
		}
	}
}

func TestCalculate_SurchargeAboveThreshold(t *testing.T) {
	t.Parallel()

	rates := flatTariff()
	rates.PowerFactor.Threshold = 1.2
	rates.PowerFactor.Rate = 10

	readings := []meter.Reading{
		demandReading(at(10, 0, 0), 100, 0, 150),
	}

	rec := Calculate(readings, rates)
	if rec.Surcharge != 3 { // (1.5 - 1.2) * 10
		t.Fatalf("surcharge = %v, want 3", rec.Surcharge)
	}
}

func TestCalculate_SkipsNilRegisters(t *testing.T) {
	t.Parallel()

	gap := meter.Reading{Timestamp: at(12, 0, 0), SlaveID: 1} // no register value
	readings := []meter.Reading{
		registerReading(10, 0, 500),
		gap,
		registerReading(14, 0, 520),
	}

	rec := Calculate(readings, flatTariff())
	if rec.TotalKWh != 20 {
		t.Fatalf("totalKWh = %v, want 20 (nil register must not count as zero)", rec.TotalKWh)
	}
}

func TestCalculate_EmptyWindowIsAllZero(t *testing.T) {
	t.Parallel()

	rec := Calculate(nil, flatTariff())
	if rec.TotalKWh != 0 || rec.Total != 0 || rec.GrandTotal != 0 || rec.Surcharge != 0 {
		t.Fatalf("rec = %+v", rec)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	t.Parallel()

	lead := registerReading(9, 30, 1000.123)
	lead.DemandW = fp(87.65)
	lead.DemandVar = fp(12.34)
	lead.DemandVA = fp(88.51)
	readings := []meter.Reading{
		lead,
		registerReading(18, 0, 1042.987),
		registerReading(23, 30, 1050.5),
	}

	a := Calculate(readings, tariff.Default())
	b := Calculate(readings, tariff.Default())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestCalculate_VATRoundTrip(t *testing.T) {
	t.Parallel()

	lead := registerReading(9, 0, 100)
	lead.DemandW = fp(100)
	lead.DemandVA = fp(100)
	readings := []meter.Reading{lead, registerReading(20, 0, 175)}

	rates := tariff.Default()
	rec := Calculate(readings, rates)

	// rounding the VAT to 2 decimals smears by up to 0.005/vatRate when
	// backed out, so the tolerance is a cent-scale band, not exact
	backedOut := rec.VAT / rates.VATRate
	if math.Abs(backedOut-(rec.Total-rec.FT)) > 0.1 {
		t.Fatalf("vat/%v = %v, want ~ total-ft = %v", rates.VATRate, backedOut, rec.Total-rec.FT)
	}
}
