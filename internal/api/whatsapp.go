package api

import (
	"net/http"

	"whatsapp-console/internal/console"

	"github.com/gin-gonic/gin"
)

type WhatsAppHandler struct {
	Console *console.Console
}

func NewWhatsAppHandler(con *console.Console) *WhatsAppHandler {
	return &WhatsAppHandler{Console: con}
}

func (h *WhatsAppHandler) Connect(c *gin.Context) {
	phone, err := h.Console.ConnectWhatsApp(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "Connected to WhatsApp API",
		"phoneNumber": phone,
	})
}

func (h *WhatsAppHandler) Disconnect(c *gin.Context) {
	h.Console.Disconnect()
	c.JSON(http.StatusOK, gin.H{"status": "Disconnected"})
}
