package meter

import "time"

// Reading is one sampled frame from a meter. Every electrical parameter is
// nullable: a meter that answers a poll with a partial register map leaves the
// missing parameters nil, and they stay nil until an output boundary decides
// what zero means there.
type Reading struct {
	Timestamp time.Time
	SlaveID   int

	Frequency *float64

	VoltAN    *float64
	VoltBN    *float64
	VoltCN    *float64
	VoltLNAvg *float64
	VoltAB    *float64
	VoltBC    *float64
	VoltCA    *float64
	VoltLLAvg *float64

	CurrA   *float64
	CurrB   *float64
	CurrC   *float64
	CurrAvg *float64
	CurrN   *float64

	WattA     *float64
	WattB     *float64
	WattC     *float64
	WattTotal *float64

	VarA     *float64
	VarB     *float64
	VarC     *float64
	VarTotal *float64

	VAA     *float64
	VAB     *float64
	VAC     *float64
	VATotal *float64

	PFA     *float64
	PFB     *float64
	PFC     *float64
	PFTotal *float64

	DemandW   *float64
	DemandVar *float64
	DemandVA  *float64

	ImportKWh   *float64
	ExportKWh   *float64
	ImportKvarh *float64
	ExportKvarh *float64

	THDVolt *float64
	THDCurr *float64
}

// Info is one row of meter metadata. Class is the tariff class label shown on
// charge reports.
type Info struct {
	SlaveID int    `json:"slaveId"`
	Name    string `json:"name"`
	Class   string `json:"class"`
}

// Coerce maps a nullable parameter to a plain number. This is the only place
// nil becomes zero; aggregation decisions upstream must look at the pointer.
func Coerce(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
