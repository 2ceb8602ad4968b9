package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jirapatw/powerview-ingestor/internal/models"
)

// readingColumns lists the parameter columns in the order models.Frame.Values
// emits them.
var readingColumns = []string{
	"frequency",
	"volt_an", "volt_bn", "volt_cn", "volt_ln_avg",
	"volt_ab", "volt_bc", "volt_ca", "volt_ll_avg",
	"curr_a", "curr_b", "curr_c", "curr_avg", "curr_n",
	"watt_a", "watt_b", "watt_c", "watt_total",
	"var_a", "var_b", "var_c", "var_total",
	"va_a", "va_b", "va_c", "va_total",
	"pf_a", "pf_b", "pf_c", "pf_total",
	"demand_w", "demand_var", "demand_va",
	"import_kwh", "export_kwh", "import_kvarh", "export_kvarh",
	"thd_volt", "thd_curr",
}

var insertReadingSQL = buildInsertSQL()

func buildInsertSQL() string {
	placeholders := make([]string, 0, len(readingColumns)+2)
	for i := 0; i < len(readingColumns)+2; i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	return `INSERT INTO powerview.readings (slave_id, ts, ` + strings.Join(readingColumns, ", ") + `)
VALUES (` + strings.Join(placeholders, ",") + `)
ON CONFLICT (slave_id, ts) DO UPDATE
SET ` + updateClause()
}

func updateClause() string {
	sets := make([]string, 0, len(readingColumns))
	for _, col := range readingColumns {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	return strings.Join(sets, ",\n    ")
}

// InsertReadings writes normalized rows to the readings table. Re-published
// frames overwrite the stored row for their (slave, ts) slot.
func InsertReadings(ctx context.Context, pool *pgxpool.Pool, rows []models.ReadingRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		args := make([]any, 0, len(readingColumns)+2)
		args = append(args, row.SlaveID, row.TS)
		args = append(args, row.Frame.Values()...)
		batch.Queue(insertReadingSQL, args...)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range rows {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}
