package api

import (
	"net/http"

	"whatsapp-console/internal/console"
	"whatsapp-console/pkg/models"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Console *console.Console
}

func NewSettingsHandler(con *console.Console) *SettingsHandler {
	return &SettingsHandler{Console: con}
}

type SettingsResponse struct {
	Config      models.APIConfig `json:"config"`
	ConfigSaved bool             `json:"configSaved"`
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	draft, saved := h.Console.Draft()
	c.JSON(http.StatusOK, SettingsResponse{Config: draft, ConfigSaved: saved})
}

// UpdateDraft edits the working configuration without saving it.
func (h *SettingsHandler) UpdateDraft(c *gin.Context) {
	var req models.APIConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Console.UpdateDraft(req)

	draft, saved := h.Console.Draft()
	c.JSON(http.StatusOK, SettingsResponse{Config: draft, ConfigSaved: saved})
}

func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var req models.APIConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.Console.SaveConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Configuration saved successfully!", "saved": saved})
}

func (h *SettingsHandler) LoadSettings(c *gin.Context) {
	saved, err := h.Console.LoadConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Configuration loaded successfully!", "saved": saved})
}

func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	if err := h.Console.ResetConfig(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Configuration reset"})
}

func (h *SettingsHandler) TestWebhook(c *gin.Context) {
	res, err := h.Console.TestWebhook(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SettingsHandler) TestN8n(c *gin.Context) {
	res, err := h.Console.TestN8n(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SettingsHandler) TestBackend(c *gin.Context) {
	res, err := h.Console.TestBackend(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
