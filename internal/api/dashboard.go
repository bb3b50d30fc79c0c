package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridops/internal/aggregate"
	"gridops/internal/source"
)

// GetDashboard serves the reconciled view for the caller's active filters:
// filtered records, category counts, the trend series and the grouping
// option lists. Counts and trend are recomputed from scratch per request.
// GET /api/dashboard?circle=&division=&subDivision=&date=
func (h *Handler) GetDashboard(c *gin.Context) {
	result, ok := h.orch.Current()
	if !ok {
		fresh, err := h.orch.Run()
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, source.ErrPrimaryMissing) {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		result = fresh
	}

	filters := aggregate.Filters{
		Circle:      c.Query("circle"),
		Division:    c.Query("division"),
		SubDivision: c.Query("subDivision"),
		Date:        c.Query("date"),
	}

	c.JSON(http.StatusOK, gin.H{
		"generation": result.Generation,
		"ranAt":      result.RanAt,
		"filters":    filters,
		"records":    aggregate.FilterRecords(result.Records, filters),
		"counts":     aggregate.Counts(result.Records, filters),
		"trend":      aggregate.Trend(result.Records, filters),
		"options":    aggregate.GroupingOptions(result.Records),
		"report":     result.Report,
		"files":      result.Files,
	})
}

// Refresh re-runs the reconciliation pipeline over freshly fetched datasets.
// POST /api/refresh
func (h *Handler) Refresh(c *gin.Context) {
	result, err := h.orch.Run()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, source.ErrPrimaryMissing) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"generation": result.Generation,
		"records":    result.Report.Records,
		"report":     result.Report,
	})
}

// GetStatus reports service health and the latest run, if any.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	files, err := h.store.ListFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := gin.H{
		"status":  "ok",
		"uploads": len(files),
	}
	if result, ok := h.orch.Current(); ok {
		status["generation"] = result.Generation
		status["lastRun"] = result.RanAt
		status["records"] = result.Report.Records
	}
	c.JSON(http.StatusOK, status)
}
