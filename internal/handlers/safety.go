package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers/dto"
	"github.com/thereayou/everchat/internal/middleware"
	"github.com/thereayou/everchat/internal/models"
	"log/slog"
	"net/http"
)

const sosSentMessage = "تم إرسال تنبيه الطوارئ بنجاح. سيتم إبلاغ جهات الاتصال الخاصة بك."

type SafetyHandler struct {
	db *database.Database
}

func NewSafetyHandler(db *database.Database) *SafetyHandler {
	return &SafetyHandler{db: db}
}

// SendSOS сохраняет тревогу с координатами; рассылки нет
func (h *SafetyHandler) SendSOS(c *gin.Context) {
	var req dto.SOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.SOSResponse{Success: false, Message: "latitude and longitude are required"})
		return
	}

	alert := &models.SOSAlert{
		AccountID: middleware.AccountID(c),
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Message:   req.Message,
		Status:    models.SOSStatusActive,
	}
	if err := h.db.SaveSOSAlert(c.Request.Context(), alert); err != nil {
		slog.Error("save sos alert failed", "component", "handlers", "error", err)
		c.JSON(http.StatusInternalServerError, dto.SOSResponse{Success: false, Message: "failed to send alert"})
		return
	}

	slog.Warn("sos alert raised", "component", "handlers", "alert_id", alert.ID, "account_id", alert.AccountID)
	c.JSON(http.StatusOK, dto.SOSResponse{Success: true, Message: sosSentMessage})
}

func (h *SafetyHandler) ListEmergencyContacts(c *gin.Context) {
	contacts, err := h.db.ListEmergencyContacts(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get contacts"})
		return
	}

	result := make([]gin.H, len(contacts))
	for i, ct := range contacts {
		result[i] = gin.H{
			"id":           ct.ID,
			"name":         ct.Name,
			"phone":        ct.Phone,
			"relationship": ct.Relationship,
			"is_primary":   ct.IsPrimary,
		}
	}
	c.JSON(http.StatusOK, gin.H{"contacts": result})
}

func (h *SafetyHandler) AddEmergencyContact(c *gin.Context) {
	var req dto.EmergencyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact := &models.EmergencyContact{
		AccountID:    middleware.AccountID(c),
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
		IsPrimary:    req.IsPrimary,
	}
	if err := h.db.SaveEmergencyContact(c.Request.Context(), contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save contact"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": contact.ID})
}

func (h *SafetyHandler) ListOfflineMaps(c *gin.Context) {
	maps, err := h.db.ListOfflineMaps(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get maps"})
		return
	}

	result := make([]gin.H, len(maps))
	for i, m := range maps {
		result[i] = gin.H{
			"id":            m.ID,
			"region_name":   m.RegionName,
			"center_lat":    m.CenterLat,
			"center_lng":    m.CenterLng,
			"zoom_level":    m.ZoomLevel,
			"file_size":     m.FileSize,
			"downloaded_at": isoTime(m.DownloadedAt),
			"last_used_at":  isoTime(m.LastUsedAt),
		}
	}
	c.JSON(http.StatusOK, gin.H{"maps": result})
}

func (h *SafetyHandler) SaveOfflineMap(c *gin.Context) {
	var req dto.OfflineMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zoom := req.ZoomLevel
	if zoom == 0 {
		zoom = 10
	}
	m := &models.OfflineMap{
		AccountID:  middleware.AccountID(c),
		RegionName: req.RegionName,
		CenterLat:  *req.CenterLat,
		CenterLng:  *req.CenterLng,
		ZoomLevel:  zoom,
		FileSize:   req.FileSize,
	}
	if err := h.db.SaveOfflineMap(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save map"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": m.ID})
}
