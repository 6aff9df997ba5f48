package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/media"
	"github.com/thereayou/everchat/internal/middleware"
	"io"
	"log/slog"
	"net/http"
)

type PostHandler struct {
	db    *database.Database
	media *media.Ingestor
}

func NewPostHandler(db *database.Database, ingestor *media.Ingestor) *PostHandler {
	return &PostHandler{db: db, media: ingestor}
}

// Feed все посты, новые первыми
func (h *PostHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()
	accountID := middleware.AccountID(c)

	posts, err := h.db.ListFeed(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get feed"})
		return
	}

	ids := make([]uuid.UUID, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	stats, err := h.db.FeedStats(ctx, accountID, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get feed"})
		return
	}

	result := make([]dto.PostResponse, len(posts))
	for i := range posts {
		result[i] = formatPost(&posts[i], stats[posts[i].ID])
	}
	c.JSON(http.StatusOK, gin.H{"posts": result})
}

// CreatePost принимает multipart форму с подписью и необязательной картинкой.
// Картинка с неподдерживаемым расширением отбрасывается, пост всё равно создаётся.
func (h *PostHandler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	accountID := middleware.AccountID(c)

	var mediaRef string
	if fh, err := c.FormFile("image"); err == nil {
		upload, closer, err := media.FromFileHeader(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
			return
		}
		mediaRef, err = h.ingest(c, upload, closer)
		if err != nil {
			slog.Error("post media upload failed", "component", "handlers", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
			return
		}
	}

	post, err := h.db.CreatePost(ctx, accountID, c.PostForm("caption"), mediaRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	full, err := h.db.GetPost(ctx, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusCreated, formatPost(full, nil))
}

func (h *PostHandler) ingest(c *gin.Context, upload *media.Upload, closer io.Closer) (string, error) {
	defer closer.Close()
	return h.media.Ingest(c.Request.Context(), upload)
}

// LikePost переключает лайк текущего пользователя
func (h *PostHandler) LikePost(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}

	result, err := h.db.ToggleLike(c.Request.Context(), middleware.AccountID(c), postID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	case err != nil:
		slog.Error("toggle like failed", "component", "handlers", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, dto.LikeResponse{
		Action:    string(result.Action),
		LikeCount: result.LikeCount,
	})
}

// AddComment пустой текст молча игнорируется
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.db.AddComment(c.Request.Context(), middleware.AccountID(c), postID, req.Content)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	case comment == nil:
		c.JSON(http.StatusOK, gin.H{"created": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"comment": dto.CommentResponse{
			ID:        comment.ID,
			PostID:    comment.PostID,
			Content:   comment.Content,
			CreatedAt: isoTime(comment.CreatedAt),
		},
	})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}

	comments, err := h.db.ListComments(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get comments"})
		return
	}

	result := make([]dto.CommentResponse, len(comments))
	for i, cm := range comments {
		result[i] = dto.CommentResponse{
			ID:        cm.ID,
			PostID:    cm.PostID,
			Content:   cm.Content,
			CreatedAt: isoTime(cm.CreatedAt),
			Author:    userInfo(&cm.Account),
		}
	}
	c.JSON(http.StatusOK, gin.H{"comments": result})
}
