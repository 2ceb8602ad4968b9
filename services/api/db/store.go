package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jirapatw/powerview/services/api/meter"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// New creates a Store backed by a pgx pool. Reading timestamps are returned in
// loc so hour-of-day aggregation sees site wall-clock time.
func New(ctx context.Context, databaseURL string, loc *time.Location) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	return &Store{pool: pool, loc: loc}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// RangeQuery holds filters for retrieving readings.
type RangeQuery struct {
	Start    time.Time
	End      time.Time
	SlaveIDs []int
}

var readingsSQL = `
    SELECT ts, slave_id, ` + strings.Join(meter.Columns(), ", ") + `
    FROM powerview.readings
    WHERE ts >= $1 AND ts <= $2
`

// FetchReadings returns readings inside [Start, End], optionally restricted to
// a set of slave ids, ordered by timestamp ascending.
func (s *Store) FetchReadings(ctx context.Context, q RangeQuery) ([]meter.Reading, error) {
	sql := readingsSQL
	args := []any{q.Start, q.End}
	if len(q.SlaveIDs) > 0 {
		sql += " AND slave_id = ANY($3)"
		args = append(args, q.SlaveIDs)
	}
	sql += " ORDER BY ts"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]meter.Reading, 0)
	for rows.Next() {
		var r meter.Reading
		var ts time.Time
		// Destinations follow meter.Columns() declaration order.
		if err := rows.Scan(
			&ts,
			&r.SlaveID,
			&r.Frequency,
			&r.VoltAN, &r.VoltBN, &r.VoltCN, &r.VoltLNAvg,
			&r.VoltAB, &r.VoltBC, &r.VoltCA, &r.VoltLLAvg,
			&r.CurrA, &r.CurrB, &r.CurrC, &r.CurrAvg, &r.CurrN,
			&r.WattA, &r.WattB, &r.WattC, &r.WattTotal,
			&r.VarA, &r.VarB, &r.VarC, &r.VarTotal,
			&r.VAA, &r.VAB, &r.VAC, &r.VATotal,
			&r.PFA, &r.PFB, &r.PFC, &r.PFTotal,
			&r.DemandW, &r.DemandVar, &r.DemandVA,
			&r.ImportKWh, &r.ExportKWh, &r.ImportKvarh, &r.ExportKvarh,
			&r.THDVolt, &r.THDCurr,
		); err != nil {
			return nil, err
		}
		r.Timestamp = ts.In(s.loc)
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

const listMetersSQL = `
    SELECT slave_id, name, class
    FROM powerview.meters
    ORDER BY slave_id
`

// ListMeters returns all configured meters.
func (s *Store) ListMeters(ctx context.Context) ([]meter.Info, error) {
	rows, err := s.pool.Query(ctx, listMetersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meters := make([]meter.Info, 0)
	for rows.Next() {
		var m meter.Info
		if err := rows.Scan(&m.SlaveID, &m.Name, &m.Class); err != nil {
			return nil, err
		}
		meters = append(meters, m)
	}
	return meters, rows.Err()
}
