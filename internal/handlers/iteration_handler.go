package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/service"
	"github.com/fedcoord/backend/internal/storage"
)

// ListModels lists a coordinator's iterations, newest first.
func (h *Handler) ListModels(c *gin.Context) {
	h.listIterations(c, h.iterations.ListByOwner)
}

// RunningIterations lists a coordinator's iterations with version > 0,
// highest version first.
func (h *Handler) RunningIterations(c *gin.Context) {
	h.listIterations(c, h.iterations.ListRunning)
}

// listIterations factors the shared user_id validation of the two
// listing endpoints.
func (h *Handler) listIterations(c *gin.Context, list func(ctx context.Context, ownerID string) ([]models.Iteration, error)) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id parameter is required"})
		return
	}

	iterations, err := list(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrCentralNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Central Auth user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list iterations"})
		return
	}
	if iterations == nil {
		iterations = []models.Iteration{}
	}

	c.JSON(http.StatusOK, iterations)
}

// StartIteration creates a new iteration from a multipart request
// carrying the model artifact.
func (h *Handler) StartIteration(c *gin.Context) {
	centralAuthID := c.PostForm("central_auth")
	modelName := c.PostForm("model_name")
	datasetDomain := c.PostForm("dataset_domain")
	versionText := c.PostForm("version")

	if centralAuthID == "" || modelName == "" || datasetDomain == "" || versionText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "central_auth, model_name, dataset_domain and version are required"})
		return
	}

	version, err := strconv.Atoi(versionText)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "version must be an integer"})
		return
	}

	fileHeader, err := c.FormFile("model_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_file could not be read"})
		return
	}
	defer file.Close()

	storedPath, err := h.artifacts.Save(fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store model file"})
		return
	}

	iteration, err := h.iterations.Create(c.Request.Context(), service.CreateIterationParams{
		CentralAuthID: centralAuthID,
		ModelName:     modelName,
		DatasetDomain: datasetDomain,
		ModelFile:     storedPath,
		Version:       version,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnerNotFound), errors.Is(err, service.ErrOwnerNotCentral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "The selected user is not a Central Auth user."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create iteration"})
		}
		return
	}

	c.JSON(http.StatusCreated, iteration)
}

// UpdateIteration applies a partial multipart update to an iteration.
// A central_auth value in the payload may only confirm the current
// owner; any other account is rejected.
func (h *Handler) UpdateIteration(c *gin.Context) {
	id := c.Param("id")

	var params service.UpdateIterationParams
	if v, ok := c.GetPostForm("central_auth"); ok && v != "" {
		params.CentralAuthID = &v
	}
	if v, ok := c.GetPostForm("model_name"); ok {
		params.ModelName = &v
	}
	if v, ok := c.GetPostForm("dataset_domain"); ok {
		params.DatasetDomain = &v
	}
	if v, ok := c.GetPostForm("version"); ok {
		version, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "version must be an integer"})
			return
		}
		params.Version = &version
	}

	if fileHeader, err := c.FormFile("model_file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "model_file could not be read"})
			return
		}
		defer file.Close()

		storedPath, err := h.artifacts.Save(fileHeader.Filename, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store model file"})
			return
		}
		params.ModelFile = &storedPath
	}

	iteration, err := h.iterations.Update(c.Request.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Iteration not found."})
		case errors.Is(err, service.ErrOwnerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provided central_auth user not found."})
		case errors.Is(err, service.ErrOwnerNotCentral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provided user is not a central auth user."})
		case errors.Is(err, service.ErrOwnerMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to edit this iteration."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update iteration"})
		}
		return
	}

	c.JSON(http.StatusOK, iteration)
}
