package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/middleware"
	"github.com/thereayou/everchat/internal/models"
	"github.com/thereayou/everchat/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"log/slog"
	"net/http"
	"time"
)

type AuthHandler struct {
	db          *database.Database
	jwtManager  *auth.JWTManager
	revocations auth.Revocations
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, revocations auth.Revocations) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, revocations: revocations}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	account := &models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		LastSeenAt:   time.Now(),
	}

	err = h.db.CreateAccount(c.Request.Context(), account)
	switch {
	case errors.Is(err, database.ErrDuplicateUsername), errors.Is(err, database.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		slog.Error("register failed", "component", "handlers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered", "id": account.ID})
}

// Login выдаёт JWT и обновляет last_seen
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.db.FindAccountByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if err := h.db.UpdateLastSeen(c.Request.Context(), account.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update last seen"})
		return
	}

	token, err := h.jwtManager.Generate(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout отзывает токен до его истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken := c.GetString(middleware.TokenKey)

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.revocations.Revoke(c.Request.Context(), rawToken, time.Until(exp)); err != nil {
		slog.Error("revoke token failed", "component", "handlers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke token"})
		return
	}

	c.Status(http.StatusOK)
}
