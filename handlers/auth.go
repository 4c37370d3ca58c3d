package handlers

import (
	"log"
	"net/http"

	"absensi_qr/middleware"
	"absensi_qr/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	tokenService *middleware.TokenService
}

func NewAuthHandler(tokenService *middleware.TokenService) *AuthHandler {
	return &AuthHandler{tokenService: tokenService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.tokenService.Authenticate(req.Username, req.Password) {
		log.Printf("[%s] Failed admin login for %q", middleware.GetRequestID(c), req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokens, err := h.tokenService.GenerateToken(req.Username)
	if err != nil {
		log.Printf("[%s] Error generating token: %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}
