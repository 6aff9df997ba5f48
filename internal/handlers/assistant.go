package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/assistant"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/middleware"
	"github.com/thereayou/everchat/internal/models"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const emptyMessageReply = "⚠️ الرجاء كتابة رسالة قبل الإرسال."

type AssistantHandler struct {
	db      *database.Database
	gateway *assistant.Gateway
}

func NewAssistantHandler(db *database.Database, gateway *assistant.Gateway) *AssistantHandler {
	return &AssistantHandler{db: db, gateway: gateway}
}

// Chat всегда отвечает 200; success=false означает fallback
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.AssistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusOK, dto.AssistantResponse{Success: false, Response: emptyMessageReply})
		return
	}

	mode := assistant.ParseMode(req.Mode)
	reply := h.gateway.Converse(c.Request.Context(), mode, message)
	if reply.OK {
		h.logExchange(c, mode, message, reply.Text)
	}

	c.JSON(http.StatusOK, dto.AssistantResponse{Success: reply.OK, Response: reply.Text})
}

// ProcessCommand обрабатывает сообщения вида "@gpt вопрос".
// С recipient_id ответ ассистента сохраняется в переписку с пометкой AI.
func (h *AssistantHandler) ProcessCommand(c *gin.Context) {
	var req dto.AssistantCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipientID := uuid.Nil
	if req.RecipientID != "" {
		id, err := uuid.Parse(req.RecipientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient_id"})
			return
		}
		recipientID = id

		_, err = h.db.GetAccount(c.Request.Context(), recipientID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.AssistantResponse{Success: false, Error: "recipient not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, dto.AssistantResponse{Success: false, Error: "failed to get recipient"})
			return
		}
	}

	question, ok := assistant.ExtractCommand(req.Message)
	if !ok {
		c.JSON(http.StatusOK, dto.AssistantResponse{Success: false, Error: "not an assistant command"})
		return
	}
	if question == "" {
		c.JSON(http.StatusOK, dto.AssistantResponse{Success: false, Error: "question is empty"})
		return
	}

	reply := h.gateway.Converse(c.Request.Context(), assistant.ModeGeneral, question)
	if !reply.OK {
		c.JSON(http.StatusOK, dto.AssistantResponse{Success: false, Response: reply.Text})
		return
	}

	h.logExchange(c, assistant.ModeGeneral, question, reply.Text)

	if recipientID != uuid.Nil {
		_, err := h.db.SendMessage(c.Request.Context(), middleware.AccountID(c), recipientID, reply.Text, true)
		if err != nil {
			slog.Error("store assistant reply failed", "component", "handlers", "error", err)
		}
	}

	c.JSON(http.StatusOK, dto.AssistantResponse{Success: true, Response: reply.Text})
}

// History журнал разговоров с ассистентом, новые первыми
func (h *AssistantHandler) History(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	exchanges, err := h.db.ListExchanges(c.Request.Context(), middleware.AccountID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get history"})
		return
	}

	result := make([]gin.H, len(exchanges))
	for i, e := range exchanges {
		result[i] = gin.H{
			"id":         e.ID,
			"mode":       e.Mode,
			"message":    e.UserMessage,
			"response":   e.AIResponse,
			"created_at": isoTime(e.CreatedAt),
		}
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": result})
}

func (h *AssistantHandler) logExchange(c *gin.Context, mode assistant.Mode, message, response string) {
	exchange := &models.AssistantExchange{
		AccountID:   middleware.AccountID(c),
		Mode:        string(mode),
		UserMessage: message,
		AIResponse:  response,
	}
	if err := h.db.SaveExchange(c.Request.Context(), exchange); err != nil {
		slog.Error("save assistant exchange failed", "component", "handlers", "error", err)
	}
}
