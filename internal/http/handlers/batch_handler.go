// README: Batch optimization handler; loads trips from the store for a date range.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"caravan/internal/modules/batch"
	"caravan/internal/modules/trips"
)

type BatchHandler struct {
	store *trips.Store
	batch *batch.Service
}

func NewBatchHandler(store *trips.Store, svc *batch.Service) *BatchHandler {
	return &BatchHandler{store: store, batch: svc}
}

type batchUnitPayload struct {
	DriverID        string  `json:"driver_id"`
	Date            string  `json:"date"`
	TripCount       int     `json:"trip_count"`
	Status          string  `json:"status"`
	EfficiencyScore int     `json:"efficiency_score"`
	DistanceSaved   float64 `json:"distance_saved_miles"`
	Method          string  `json:"method,omitempty"`
	Warning         string  `json:"warning,omitempty"`
}

type batchResp struct {
	Units []batchUnitPayload `json:"units"`
	Stats batch.Stats        `json:"stats"`
}

// Optimize runs the batch optimizer over every driver's trips in a date
// range. from is inclusive, to is exclusive of the following midnight.
func (h *BatchHandler) Optimize(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid or missing from date (want YYYY-MM-DD)")
		return
	}
	toDay, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid or missing to date (want YYYY-MM-DD)")
		return
	}
	to := toDay.AddDate(0, 0, 1)
	if !from.Before(to) {
		writeError(c, http.StatusBadRequest, "from must not be after to")
		return
	}

	ctx := c.Request.Context()
	list, err := h.store.ListBetween(ctx, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	drivers, err := h.store.ListDrivers(ctx)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	report := h.batch.Optimize(ctx, list, drivers, from, to)

	units := make([]batchUnitPayload, len(report.Units))
	for i, u := range report.Units {
		p := batchUnitPayload{
			DriverID:        string(u.DriverID),
			Date:            u.Date,
			TripCount:       u.TripCount,
			Status:          string(u.Status),
			EfficiencyScore: u.EfficiencyScore,
		}
		if u.Result != nil {
			p.DistanceSaved = u.Result.DistanceSavedMiles
			p.Method = string(u.Result.Method)
			p.Warning = u.Result.Warning
		}
		units[i] = p
	}
	writeJSON(c, http.StatusOK, batchResp{Units: units, Stats: report.Stats})
}
