package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridops/internal/importer"
	"gridops/internal/store"
)

// Upload accepts one spreadsheet as multipart form data, stores it, and
// re-runs reconciliation so the dashboard reflects the new file.
// POST /api/upload  (form fields: file, uploadType)
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file in request"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	info, err := h.importer.ImportSync(importer.Options{
		Filename:   fileHeader.Filename,
		UploadType: c.PostForm("uploadType"),
		Reader:     f,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// best effort; a missing primary just means the dashboard stays empty
	if _, err := h.orch.Run(); err != nil {
		log.Printf("reconciliation after upload failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"file": info})
}

// ListFiles returns the stored upload metadata, newest first.
// GET /api/files
func (h *Handler) ListFiles(c *gin.Context) {
	files, err := h.store.ListFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// DeleteFile removes one stored upload and re-runs reconciliation.
// DELETE /api/files/:id
func (h *Handler) DeleteFile(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteUpload(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.orch.Run(); err != nil {
		log.Printf("reconciliation after delete failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
