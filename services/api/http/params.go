package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jirapatw/powerview/services/api/meter"
)

// parseSlaveIDs splits a csv of meter ids; empty input means "all meters".
func parseSlaveIDs(csv string) ([]int, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("slaveIds must be a csv of integers, got %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// filterMeters keeps the meters whose slave id is in ids, preserving store
// order. A nil filter keeps everything.
func filterMeters(meters []meter.Info, ids []int) []meter.Info {
	if len(ids) == 0 {
		return meters
	}
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]meter.Info, 0, len(ids))
	for _, m := range meters {
		if wanted[m.SlaveID] {
			out = append(out, m)
		}
	}
	return out
}
