package energy

import (
	"github.com/jirapatw/powerview/services/api/meter"
)

// CurrentValues is the instantaneous snapshot shown at the top of the
// dashboard, taken from the newest reading of the window.
type CurrentValues struct {
	Watt        float64 `json:"watt"`
	Var         float64 `json:"var"`
	VA          float64 `json:"va"`
	PowerFactor float64 `json:"powerFactor"`
	VoltLN      float64 `json:"voltLN"`
	VoltLL      float64 `json:"voltLL"`
	CurrentAvg  float64 `json:"currentAvg"`
	Frequency   float64 `json:"frequency"`

	WattA float64 `json:"wattA"`
	WattB float64 `json:"wattB"`
	WattC float64 `json:"wattC"`

	VarA float64 `json:"varA"`
	VarB float64 `json:"varB"`
	VarC float64 `json:"varC"`

	VAA float64 `json:"vaA"`
	VAB float64 `json:"vaB"`
	VAC float64 `json:"vaC"`

	PowerFactorA float64 `json:"powerFactorA"`
	PowerFactorB float64 `json:"powerFactorB"`
	PowerFactorC float64 `json:"powerFactorC"`

	VoltAN float64 `json:"voltAN"`
	VoltBN float64 `json:"voltBN"`
	VoltCN float64 `json:"voltCN"`
	VoltAB float64 `json:"voltAB"`
	VoltBC float64 `json:"voltBC"`
	VoltCA float64 `json:"voltCA"`

	CurrentA float64 `json:"currentA"`
	CurrentB float64 `json:"currentB"`
	CurrentC float64 `json:"currentC"`
	CurrentN float64 `json:"currentN"`

	THDVolt    float64 `json:"thdVolt"`
	THDCurrent float64 `json:"thdCurrent"`
}

// EnergyData holds the cumulative register values of the newest reading.
type EnergyData struct {
	ImportKWh   float64 `json:"importKwh"`
	ExportKWh   float64 `json:"exportKwh"`
	ImportKvarh float64 `json:"importKvarh"`
	ExportKvarh float64 `json:"exportKvarh"`
}

// ComparisonData mirrors the sparkline quantities for a reference day.
type ComparisonData struct {
	Watt        float64 `json:"watt"`
	Var         float64 `json:"var"`
	VA          float64 `json:"va"`
	PowerFactor float64 `json:"powerFactor"`
}

// Dashboard is the full payload of the dashboard endpoint.
type Dashboard struct {
	CurrentValues CurrentValues  `json:"currentValues"`
	EnergyData    EnergyData     `json:"energyData"`
	DemandData    []DemandPoint  `json:"demandData"`
	TOUData       []TOUBucket    `json:"touData"`
	ChartData     Sparkline      `json:"chartData"`
	YesterdayData ComparisonData `json:"yesterdayData"`
}

// BuildDashboard assembles the dashboard from one window of readings. An empty
// window produces the same shape with every number zero; the consuming view
// never distinguishes "no data" from "all zeros".
func BuildDashboard(readings []meter.Reading, w Window) Dashboard {
	d := Dashboard{
		DemandData: BuildDemandSeries(readings, w),
		TOUData:    BuildTOUProfile(readings),
		ChartData:  SampleSparkline(readings),
		// TODO: fill YesterdayData from a previous-day store query once the
		// comparison view ships; it renders zeros until then.
	}

	if len(readings) == 0 {
		return d
	}

	last := &readings[len(readings)-1]
	d.CurrentValues = CurrentValues{
		Watt:        meter.Coerce(last.WattTotal),
		Var:         meter.Coerce(last.VarTotal),
		VA:          meter.Coerce(last.VATotal),
		PowerFactor: meter.Coerce(last.PFTotal),
		VoltLN:      meter.Coerce(last.VoltLNAvg),
		VoltLL:      meter.Coerce(last.VoltLLAvg),
		CurrentAvg:  meter.Coerce(last.CurrAvg),
		Frequency:   meter.Coerce(last.Frequency),

		WattA: meter.Coerce(last.WattA),
		WattB: meter.Coerce(last.WattB),
		WattC: meter.Coerce(last.WattC),

		VarA: meter.Coerce(last.VarA),
		VarB: meter.Coerce(last.VarB),
		VarC: meter.Coerce(last.VarC),

		VAA: meter.Coerce(last.VAA),
		VAB: meter.Coerce(last.VAB),
		VAC: meter.Coerce(last.VAC),

		PowerFactorA: meter.Coerce(last.PFA),
		PowerFactorB: meter.Coerce(last.PFB),
		PowerFactorC: meter.Coerce(last.PFC),

		VoltAN: meter.Coerce(last.VoltAN),
		VoltBN: meter.Coerce(last.VoltBN),
		VoltCN: meter.Coerce(last.VoltCN),
		VoltAB: meter.Coerce(last.VoltAB),
		VoltBC: meter.Coerce(last.VoltBC),
		VoltCA: meter.Coerce(last.VoltCA),

		CurrentA: meter.Coerce(last.CurrA),
		CurrentB: meter.Coerce(last.CurrB),
		CurrentC: meter.Coerce(last.CurrC),
		CurrentN: meter.Coerce(last.CurrN),

		THDVolt:    meter.Coerce(last.THDVolt),
		THDCurrent: meter.Coerce(last.THDCurr),
	}
	d.EnergyData = EnergyData{
		ImportKWh:   meter.Coerce(last.ImportKWh),
		ExportKWh:   meter.Coerce(last.ExportKWh),
		ImportKvarh: meter.Coerce(last.ImportKvarh),
		ExportKvarh: meter.Coerce(last.ExportKvarh),
	}
	return d
}
