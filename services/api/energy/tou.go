package energy

import (
	"math"

	"github.com/jirapatw/powerview/services/api/meter"
)

// TOUBucketCount covers hours 0..23 plus the closing bucket at hour 24 that
// lets a chart axis end on the day boundary.
const TOUBucketCount = 25

// TOUBucket is the hourly time-of-use profile entry. DemandVA is always
// derived from DemandW and DemandVar, never copied from the meter's stored
// apparent-demand register, so the profile stays internally consistent. The
// energy fields are the raw cumulative register values of the representative
// reading, not per-bucket deltas.
type TOUBucket struct {
	Hour        int     `json:"hour"`
	DemandW     float64 `json:"demandW"`
	DemandVar   float64 `json:"demandVar"`
	DemandVA    float64 `json:"demandVA"`
	ImportKWh   float64 `json:"importKwh"`
	ExportKWh   float64 `json:"exportKwh"`
	ImportKvarh float64 `json:"importKvarh"`
	ExportKvarh float64 `json:"exportKvarh"`
}

// BuildTOUProfile folds readings into exactly TOUBucketCount buckets. Each
// hour is represented by its last reading; hours without readings stay
// all-zero, as does the hour-24 sentinel.
func BuildTOUProfile(readings []meter.Reading) []TOUBucket {
	// Last reading per hour, input is ts ascending.
	byHour := make(map[int]*meter.Reading, TOUBucketCount)
	for i := range readings {
		byHour[readings[i].Timestamp.Hour()] = &readings[i]
	}

	buckets := make([]TOUBucket, 0, TOUBucketCount)
	for h := 0; h < TOUBucketCount; h++ {
		b := TOUBucket{Hour: h}
		if r, ok := byHour[h]; ok {
			b.DemandW = meter.Coerce(r.DemandW)
			b.DemandVar = meter.Coerce(r.DemandVar)
			b.DemandVA = math.Hypot(b.DemandW, b.DemandVar)
			b.ImportKWh = meter.Coerce(r.ImportKWh)
			b.ExportKWh = meter.Coerce(r.ExportKWh)
			b.ImportKvarh = meter.Coerce(r.ImportKvarh)
			b.ExportKvarh = meter.Coerce(r.ExportKvarh)
		}
		buckets = append(buckets, b)
	}
	return buckets
}
