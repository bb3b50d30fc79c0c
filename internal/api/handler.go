package api

import (
	"github.com/gin-gonic/gin"

	"gridops/internal/importer"
	"gridops/internal/source"
	"gridops/internal/store"
)

// Handler wires the HTTP surface to the upload store and the reconciliation
// orchestrator.
type Handler struct {
	store    *store.Store
	importer *importer.Importer
	orch     *source.Orchestrator
}

// NewHandler creates the API handler.
func NewHandler(s *store.Store, orch *source.Orchestrator) *Handler {
	return &Handler{
		store:    s,
		importer: importer.NewImporter(s),
		orch:     orch,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system status
	router.GET("/status", h.GetStatus)

	// upload management
	router.GET("/files", h.ListFiles)
	router.POST("/upload", h.Upload)
	router.DELETE("/files/:id", h.DeleteFile)

	// reconciled dashboard data
	router.GET("/dashboard", h.GetDashboard)
	router.POST("/refresh", h.Refresh)
}
