package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jirapatw/powerview/services/api/db"
	"github.com/jirapatw/powerview/services/api/energy"
)

// handleDashboard serves the meter dashboard for one aggregation window.
// GET /dashboard?date=YYYY-MM-DD&from=HH:MM&to=HH:MM&slaveId=<int>
//
// A window with no readings is not an error: the response keeps its full shape
// with every value zero.
func (s *Server) handleDashboard(c *gin.Context) {
	window, err := energy.ResolveWindow(
		c.Query("date"), c.Query("from"), c.Query("to"),
		s.now(), s.cfg.Location,
	)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_WINDOW", err.Error())
		return
	}

	var slaveIDs []int
	if idStr := c.Query("slaveId"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_SLAVE_ID", "slaveId must be an integer")
			return
		}
		slaveIDs = []int{id}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.QueryTimeout)
	defer cancel()

	readings, err := s.store.FetchReadings(ctx, db.RangeQuery{
		Start:    window.Start,
		End:      window.End,
		SlaveIDs: slaveIDs,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    energy.BuildDashboard(readings, window),
	})
}
