package api

import (
	"net/http"
	"strconv"

	"whatsapp-console/internal/console"
	"whatsapp-console/pkg/models"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Console *console.Console
}

func NewChatHandler(con *console.Console) *ChatHandler {
	return &ChatHandler{Console: con}
}

func (h *ChatHandler) GetContacts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Console.Contacts(c.Query("q")))
}

func (h *ChatHandler) SelectContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	contact, err := h.Console.SelectContact(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

type ConversationResponse struct {
	Contact  *models.Contact  `json:"contact"`
	Messages []models.Message `json:"messages"`
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	resp := ConversationResponse{Messages: h.Console.Messages()}
	if contact, ok := h.Console.SelectedContact(); ok {
		resp.Contact = &contact
	}
	c.JSON(http.StatusOK, resp)
}

type SendRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Console.SendMessage(req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *ChatHandler) GenerateAIReply(c *gin.Context) {
	msg, err := h.Console.GenerateAIReply(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
