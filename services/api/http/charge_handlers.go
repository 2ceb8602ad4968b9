package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jirapatw/powerview/services/api/db"
	"github.com/jirapatw/powerview/services/api/energy"
	"github.com/jirapatw/powerview/services/api/meter"
)

// handleCharge serves the tariff breakdown report, one record per meter.
// GET /charge?dateFrom=YYYY-MM-DD&dateTo=YYYY-MM-DD&timeFrom=HH:MM&timeTo=HH:MM&slaveIds=<csv>
func (s *Server) handleCharge(c *gin.Context) {
	window, err := energy.ResolveChargeWindow(
		c.Query("dateFrom"), c.Query("dateTo"),
		c.Query("timeFrom"), c.Query("timeTo"),
		s.cfg.Location,
	)
	if err != nil {
		code := "INVALID_WINDOW"
		if errors.Is(err, energy.ErrMissingDate) {
			code = "MISSING_DATE"
		}
		respondError(c, http.StatusBadRequest, code, err.Error())
		return
	}

	slaveIDs, err := parseSlaveIDs(c.Query("slaveIds"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SLAVE_ID", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.QueryTimeout)
	defer cancel()

	meters, err := s.store.ListMeters(ctx)
	if err != nil {
		storeError(c, err)
		return
	}
	meters = filterMeters(meters, slaveIDs)

	readings, err := s.store.FetchReadings(ctx, db.RangeQuery{
		Start:    window.Start,
		End:      window.End,
		SlaveIDs: slaveIDs,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	grouped := make(map[int][]meter.Reading, len(meters))
	for _, r := range readings {
		grouped[r.SlaveID] = append(grouped[r.SlaveID], r)
	}

	records := make([]energy.ChargeRecord, 0, len(meters))
	for _, m := range meters {
		rec := energy.Calculate(grouped[m.SlaveID], s.rates)
		rec.MeterName = m.Name
		rec.Class = m.Class
		records = append(records, rec)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}
