package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/middleware"
	"net/http"
	"strings"
)

type MessageHandler struct {
	db *database.Database
}

func NewMessageHandler(db *database.Database) *MessageHandler {
	return &MessageHandler{db: db}
}

// Chat список собеседников и последние сообщения
func (h *MessageHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()
	accountID := middleware.AccountID(c)

	contacts, err := h.db.ListContacts(ctx, accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get users"})
		return
	}
	recent, err := h.db.ListRecentActivity(ctx, accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}
	unread, err := h.db.UnreadCount(ctx, accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	users := make([]dto.UserInfo, len(contacts))
	for i := range contacts {
		users[i] = userInfo(&contacts[i])
	}
	messages := make([]dto.MessageResponse, len(recent))
	for i := range recent {
		messages[i] = formatMessage(&recent[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"users":           users,
		"recent_messages": messages,
		"unread_count":    unread,
	})
}

// SendMessage без получателя или текста ничего не делает
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipientID := uuid.Nil
	if raw := strings.TrimSpace(req.RecipientID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient_id"})
			return
		}
		recipientID = id
	}

	message, err := h.db.SendMessage(c.Request.Context(), middleware.AccountID(c), recipientID, req.Content, false)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipient not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	case message == nil:
		c.JSON(http.StatusOK, gin.H{"sent": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sent": true, "message": formatMessage(message)})
}

// GetThread переписка с пользователем; входящие помечаются прочитанными
func (h *MessageHandler) GetThread(c *gin.Context) {
	otherID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	accountID := middleware.AccountID(c)

	messages, err := h.db.ListThread(c.Request.Context(), accountID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.ThreadMessage, len(messages))
	for i, msg := range messages {
		result[i] = dto.ThreadMessage{
			ID:        msg.ID,
			Content:   msg.Content,
			SenderID:  msg.SenderID,
			CreatedAt: isoTime(msg.CreatedAt),
			IsOwn:     msg.SenderID == accountID,
		}
	}
	c.JSON(http.StatusOK, result)
}
