package api

import (
	"net/http"

	"whatsapp-console/internal/auth"
	"whatsapp-console/internal/console"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Sessions *auth.Manager
	Console  *console.Console
}

func NewAuthHandler(sessions *auth.Manager, con *console.Console) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Console: con}
}

type LoginRequest struct {
	OTP string `json:"otp"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Sessions.Login(req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Console.OnLogin(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(c.GetString(tokenKey)); err != nil {
		respondError(c, err)
		return
	}
	h.Console.OnLogout()

	c.JSON(http.StatusOK, gin.H{"status": "Logged out"})
}
