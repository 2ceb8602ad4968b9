package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frame is one JSON payload published by a meter gateway. Every parameter is
// nullable; gateways also use large negative sentinels for registers the meter
// refused to answer, which Normalize folds into null.
type Frame struct {
	Timestamp time.Time `json:"timestamp"`

	Frequency *float64 `json:"frequency"`

	VoltAN    *float64 `json:"voltAN"`
	VoltBN    *float64 `json:"voltBN"`
	VoltCN    *float64 `json:"voltCN"`
	VoltLNAvg *float64 `json:"voltLN"`
	VoltAB    *float64 `json:"voltAB"`
	VoltBC    *float64 `json:"voltBC"`
	VoltCA    *float64 `json:"voltCA"`
	VoltLLAvg *float64 `json:"voltLL"`

	CurrA   *float64 `json:"currentA"`
	CurrB   *float64 `json:"currentB"`
	CurrC   *float64 `json:"currentC"`
	CurrAvg *float64 `json:"currentAvg"`
	CurrN   *float64 `json:"currentN"`

	WattA     *float64 `json:"wattA"`
	WattB     *float64 `json:"wattB"`
	WattC     *float64 `json:"wattC"`
	WattTotal *float64 `json:"watt"`

	VarA     *float64 `json:"varA"`
	VarB     *float64 `json:"varB"`
	VarC     *float64 `json:"varC"`
	VarTotal *float64 `json:"var"`

	VAA     *float64 `json:"vaA"`
	VAB     *float64 `json:"vaB"`
	VAC     *float64 `json:"vaC"`
	VATotal *float64 `json:"va"`

	PFA     *float64 `json:"powerFactorA"`
	PFB     *float64 `json:"powerFactorB"`
	PFC     *float64 `json:"powerFactorC"`
	PFTotal *float64 `json:"powerFactor"`

	DemandW   *float64 `json:"demandW"`
	DemandVar *float64 `json:"demandVar"`
	DemandVA  *float64 `json:"demandVA"`

	ImportKWh   *float64 `json:"importKwh"`
	ExportKWh   *float64 `json:"exportKwh"`
	ImportKvarh *float64 `json:"importKvarh"`
	ExportKvarh *float64 `json:"exportKvarh"`

	THDVolt *float64 `json:"thdVolt"`
	THDCurr *float64 `json:"thdCurrent"`
}

// ReadingRow is a normalized frame ready for insertion.
type ReadingRow struct {
	SlaveID int
	TS      time.Time
	Frame   Frame
}

// SlaveIDFromTopic extracts the meter id from a meters/<id>/readings topic.
func SlaveIDFromTopic(topic string) (int, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "meters" || parts[2] != "readings" {
		return 0, fmt.Errorf("unexpected topic %q", topic)
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad slave id in topic %q", topic)
	}
	return id, nil
}

// Decode parses a payload into a normalized row. Frames without a timestamp
// are stamped with receivedAt.
func Decode(topic string, payload []byte, receivedAt time.Time) (ReadingRow, error) {
	id, err := SlaveIDFromTopic(topic)
	if err != nil {
		return ReadingRow{}, err
	}

	var f Frame
	if err := json.Unmarshal(payload, &f); err != nil {
		return ReadingRow{}, fmt.Errorf("decode frame: %w", err)
	}
	f.Normalize()

	ts := f.Timestamp
	if ts.IsZero() {
		ts = receivedAt
	}

	return ReadingRow{SlaveID: id, TS: ts.UTC().Truncate(time.Second), Frame: f}, nil
}

// NormalizeValue cleans raw register values; <= -900 sentinel -> nil.
func NormalizeValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v <= -900 {
		return nil
	}
	val := *v
	return &val
}

// Normalize applies NormalizeValue to every parameter in place.
func (f *Frame) Normalize() {
	for _, p := range f.params() {
		*p = NormalizeValue(*p)
	}
}

// Values returns the parameters in storage column order, matching the insert
// statement in the db package.
func (f *Frame) Values() []any {
	params := f.params()
	out := make([]any, 0, len(params))
	for _, p := range params {
		out = append(out, *p)
	}
	return out
}

func (f *Frame) params() []**float64 {
	return []**float64{
		&f.Frequency,
		&f.VoltAN, &f.VoltBN, &f.VoltCN, &f.VoltLNAvg,
		&f.VoltAB, &f.VoltBC, &f.VoltCA, &f.VoltLLAvg,
		&f.CurrA, &f.CurrB, &f.CurrC, &f.CurrAvg, &f.CurrN,
		&f.WattA, &f.WattB, &f.WattC, &f.WattTotal,
		&f.VarA, &f.VarB, &f.VarC, &f.VarTotal,
		&f.VAA, &f.VAB, &f.VAC, &f.VATotal,
		&f.PFA, &f.PFB, &f.PFC, &f.PFTotal,
		&f.DemandW, &f.DemandVar, &f.DemandVA,
		&f.ImportKWh, &f.ExportKWh, &f.ImportKvarh, &f.ExportKvarh,
		&f.THDVolt, &f.THDCurr,
	}
}
