package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/service"
	"github.com/fedcoord/backend/internal/storage"
)

// AssignClientRequest is the payload for POST /assign_client/.
type AssignClientRequest struct {
	CentralAuthID string `json:"central_auth_id"`
	ClientID      string `json:"client_id"`
	DataDomain    string `json:"data_domain"`
	ModelName     string `json:"model_name"`
	IterationName string `json:"iteration_name"`
}

// AssignClient creates an assignment linking a client to a coordinator.
func (h *Handler) AssignClient(c *gin.Context) {
	var req AssignClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if req.CentralAuthID == "" || req.ClientID == "" || req.DataDomain == "" || req.ModelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	assignment, err := h.assignments.Assign(c.Request.Context(), service.AssignParams{
		CentralAuthID: req.CentralAuthID,
		ClientID:      req.ClientID,
		DataDomain:    req.DataDomain,
		ModelName:     req.ModelName,
		IterationName: req.IterationName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid central_auth_id or client_id"})
		case errors.Is(err, storage.ErrAlreadyAssigned):
			c.JSON(http.StatusBadRequest, gin.H{"error": "This client is already assigned"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign client"})
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// FetchAssignments lists a coordinator's assignments by email.
func (h *Handler) FetchAssignments(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email parameter is required"})
		return
	}

	assignments, err := h.assignments.ListByCoordinatorEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	c.JSON(http.StatusOK, assignments)
}
