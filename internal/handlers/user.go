package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/media"
	"github.com/thereayou/everchat/internal/middleware"
	"log/slog"
	"net/http"
)

type UserHandler struct {
	db    *database.Database
	media *media.Ingestor
}

func NewUserHandler(db *database.Database, ingestor *media.Ingestor) *UserHandler {
	return &UserHandler{db: db, media: ingestor}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	accountID := middleware.AccountID(c)

	account, err := h.db.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           account.ID,
		"username":     account.Username,
		"email":        account.Email,
		"bio":          account.Bio,
		"avatar_url":   mediaURL(account.AvatarRef),
		"created_at":   isoTime(account.CreatedAt),
		"last_seen_at": isoTime(account.LastSeenAt),
	})
}

// UpdateMe обновляет био текущего пользователя
func (h *UserHandler) UpdateMe(c *gin.Context) {
	accountID := middleware.AccountID(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.db.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Bio != nil {
		account.Bio = *req.Bio
	}

	if err := h.db.UpdateAccount(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         account.ID,
		"username":   account.Username,
		"bio":        account.Bio,
		"avatar_url": mediaURL(account.AvatarRef),
	})
}

// UploadAvatar сохраняет новую аватарку; неподдерживаемый файл отклоняется
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	accountID := middleware.AccountID(c)

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	upload, closer, err := media.FromFileHeader(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
		return
	}
	defer closer.Close()

	ref, err := h.media.IngestAvatar(c.Request.Context(), accountID, upload)
	if err != nil {
		slog.Error("avatar upload failed", "component", "handlers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	account, err := h.db.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	account.AvatarRef = ref
	if err := h.db.UpdateAccount(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": mediaURL(ref)})
}

// DeleteMe удаляет аккаунт вместе с постами; переписка остаётся
func (h *UserHandler) DeleteMe(c *gin.Context) {
	accountID := middleware.AccountID(c)

	err := h.db.DeleteAccount(c.Request.Context(), accountID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		slog.Error("delete account failed", "component", "handlers", "account_id", accountID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
	}
}

// GetProfile публичный профиль с постами пользователя
func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	account, err := h.db.FindAccountByUsername(ctx, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	posts, err := h.db.ListAccountPosts(ctx, account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get posts"})
		return
	}

	ids := make([]uuid.UUID, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	stats, err := h.db.FeedStats(ctx, uuid.Nil, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get posts"})
		return
	}

	result := make([]dto.PostResponse, len(posts))
	for i := range posts {
		result[i] = formatPost(&posts[i], stats[posts[i].ID])
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         account.ID,
			"username":   account.Username,
			"bio":        account.Bio,
			"avatar_url": mediaURL(account.AvatarRef),
			"created_at": isoTime(account.CreatedAt),
		},
		"posts": result,
	})
}
