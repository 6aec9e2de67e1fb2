package api

import (
	"net/http"
	"time"

	"whatsapp-console/internal/auth"
	"whatsapp-console/internal/console"
	"whatsapp-console/internal/ws"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every console route onto a gin engine.
func NewRouter(sessions *auth.Manager, con *console.Console, hub *ws.Hub) *gin.Engine {
	r := gin.Default()
	r.Use(CORS())

	authHandler := NewAuthHandler(sessions, con)
	dashboardHandler := NewDashboardHandler(con)
	settingsHandler := NewSettingsHandler(con)
	whatsappHandler := NewWhatsAppHandler(con)
	chatHandler := NewChatHandler(con)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	r.GET("/ws", gin.WrapF(hub.ServeWs))
	r.POST("/api/auth/login", authHandler.Login)

	apiGroup := r.Group("/api", RequireSession(sessions))
	{
		apiGroup.POST("/auth/logout", authHandler.Logout)
		apiGroup.GET("/dashboard", dashboardHandler.GetDashboard)
		apiGroup.GET("/logs", dashboardHandler.GetLogs)

		// Settings Routes
		settingsGroup := apiGroup.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.GetSettings)
			settingsGroup.PUT("", settingsHandler.UpdateDraft)
			settingsGroup.POST("", settingsHandler.SaveSettings)
			settingsGroup.DELETE("", settingsHandler.ResetSettings)
			settingsGroup.POST("/load", settingsHandler.LoadSettings)
			settingsGroup.POST("/test/webhook", settingsHandler.TestWebhook)
			settingsGroup.POST("/test/n8n", settingsHandler.TestN8n)
			settingsGroup.POST("/test/backend", settingsHandler.TestBackend)
		}

		apiGroup.POST("/whatsapp/connect", whatsappHandler.Connect)
		apiGroup.POST("/whatsapp/disconnect", whatsappHandler.Disconnect)

		// Chat Routes
		chatGroup := apiGroup.Group("/chat")
		{
			chatGroup.GET("/contacts", chatHandler.GetContacts)
			chatGroup.POST("/contacts/:id/select", chatHandler.SelectContact)
			chatGroup.GET("/messages", chatHandler.GetMessages)
			chatGroup.POST("/messages", chatHandler.SendMessage)
			chatGroup.POST("/ai-reply", chatHandler.GenerateAIReply)
		}

		apiGroup.GET("/ai/key", dashboardHandler.GetAIKey)
		apiGroup.PUT("/ai/key", dashboardHandler.SetAIKey)
	}

	return r
}
