package energy

import (
	"github.com/jirapatw/powerview/services/api/meter"
)

// SparklineSize is the number of trailing samples kept for trend display.
const SparklineSize = 6

// Sparkline holds four parallel sequences of the most recent samples. All four
// always have equal length, min(SparklineSize, rows).
type Sparkline struct {
	Watt        []float64 `json:"watt"`
	Var         []float64 `json:"var"`
	VA          []float64 `json:"va"`
	PowerFactor []float64 `json:"powerFactor"`
}

// sparklineFields are the tracked quantities, read through the shared
// parameter table.
var sparklineFields = []meter.Field{
	meter.FieldWattTotal,
	meter.FieldVarTotal,
	meter.FieldVATotal,
	meter.FieldPFTotal,
}

// SampleSparkline takes the last SparklineSize readings of the window. Missing
// values become 0 here; this is an output boundary.
func SampleSparkline(readings []meter.Reading) Sparkline {
	start := 0
	if len(readings) > SparklineSize {
		start = len(readings) - SparklineSize
	}
	tail := readings[start:]

	series := make([][]float64, len(sparklineFields))
	for i := range series {
		series[i] = make([]float64, 0, len(tail))
	}
	for r := range tail {
		for i, f := range sparklineFields {
			series[i] = append(series[i], meter.Coerce(meter.Value(&tail[r], f)))
		}
	}

	return Sparkline{
		Watt:        series[0],
		Var:         series[1],
		VA:          series[2],
		PowerFactor: series[3],
	}
}
