package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/models"
	"net/http"
	"time"
)

const uploadsPath = "/uploads/"

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func mediaURL(ref string) string {
	if ref == "" {
		return ""
	}
	return uploadsPath + ref
}

func userInfo(a *models.Account) dto.UserInfo {
	return dto.UserInfo{
		ID:        a.ID,
		Username:  a.Username,
		AvatarURL: mediaURL(a.AvatarRef),
	}
}

func formatPost(p *models.Post, stats *database.PostStats) dto.PostResponse {
	resp := dto.PostResponse{
		ID:        p.ID,
		Caption:   p.Caption,
		MediaURL:  mediaURL(p.MediaRef),
		CreatedAt: isoTime(p.CreatedAt),
		Author:    userInfo(&p.Account),
	}
	if stats != nil {
		resp.LikeCount = stats.LikeCount
		resp.CommentCount = stats.CommentCount
		resp.LikedByMe = stats.LikedByMe
	}
	return resp
}

func formatMessage(m *models.DirectMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:           m.ID,
		SenderID:     m.SenderID,
		RecipientID:  m.RecipientID,
		Content:      m.Content,
		IsRead:       m.IsRead,
		IsAIResponse: m.IsAIResponse,
		CreatedAt:    isoTime(m.CreatedAt),
	}
}

// paramID разбирает UUID из пути; при ошибке отвечает 400
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
