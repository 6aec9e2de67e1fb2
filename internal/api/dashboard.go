package api

import (
	"net/http"

	"whatsapp-console/internal/console"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Console *console.Console
}

func NewDashboardHandler(con *console.Console) *DashboardHandler {
	return &DashboardHandler{Console: con}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.Console.Dashboard())
}

// GetLogs returns the agent replies, bot and manual.
func (h *DashboardHandler) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.Console.Logs())
}

func (h *DashboardHandler) GetAIKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": h.Console.HasAIKey()})
}

type AIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

func (h *DashboardHandler) SetAIKey(c *gin.Context) {
	var req AIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Console.SetAIKey(req.APIKey)

	c.JSON(http.StatusOK, gin.H{"configured": h.Console.HasAIKey()})
}
