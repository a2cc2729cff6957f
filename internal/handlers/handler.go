// Package handlers translates HTTP requests into service calls and maps
// service errors onto the API's status codes and error payloads.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fedcoord/backend/internal/artifacts"
	"github.com/fedcoord/backend/internal/auth"
	"github.com/fedcoord/backend/internal/service"
	"github.com/fedcoord/backend/internal/storage"
)

// Handler holds the collaborators every route needs.
type Handler struct {
	store       storage.Store
	auth        auth.Authenticator
	assignments *service.AssignmentService
	iterations  *service.IterationService
	artifacts   artifacts.Store
}

// NewHandler builds a Handler from its collaborators.
func NewHandler(
	store storage.Store,
	authenticator auth.Authenticator,
	assignments *service.AssignmentService,
	iterations *service.IterationService,
	artifactStore artifacts.Store,
) *Handler {
	return &Handler{
		store:       store,
		auth:        authenticator,
		assignments: assignments,
		iterations:  iterations,
		artifacts:   artifactStore,
	}
}

// Routes registers every API route on the router.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/", h.Home)

	r.POST("/signup/", h.Signup)
	r.POST("/login/", h.Login)
	r.GET("/filter_client/", h.FilterClients)

	r.GET("/fetch_assign/:email/", h.FetchAssignments)
	r.POST("/assign_client/", h.AssignClient)

	r.GET("/central-models/", h.ListModels)
	r.POST("/central-models/start/", h.StartIteration)
	r.GET("/central-models/running/", h.RunningIterations)
	r.PUT("/central-models/:id/", h.UpdateIteration)
	r.PATCH("/central-models/:id/", h.UpdateIteration)
}

// Home is the health check.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Federated Backend Running!"})
}
