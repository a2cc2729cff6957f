package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fedcoord/backend/internal/auth"
	"github.com/fedcoord/backend/internal/models"
)

// SignupRequest is the payload for POST /signup/.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Hospital string `json:"hospital" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=central client"`
}

// Signup registers a new account.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req.Email, req.Hospital, req.Role, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		if errors.Is(err, auth.ErrWeakPassword) || errors.Is(err, auth.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

// Login authenticates an account. No token or session is issued; the
// response carries the account fields the frontend keeps client-side.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// Binding errors fall through to the required-fields check below.
	_ = c.ShouldBindJSON(&req)

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	account, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// One message for both unknown email and wrong password.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful!",
		"id":       account.ID,
		"email":    account.Email,
		"hospital": account.Hospital,
		"role":     account.Role,
	})
}

// FilterClients searches client accounts by email or hospital substring.
func (h *Handler) FilterClients(c *gin.Context) {
	text := c.Query("search")

	accounts, err := h.store.SearchAccounts(c.Request.Context(), text, models.RoleClient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search clients"})
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	c.JSON(http.StatusOK, accounts)
}
