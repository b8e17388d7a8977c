package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
	"github.com/yourusername/wedding-trivia/internal/service"
)

// RSVPHandler обрабатывает запросы RSVP: поиск и обновление записей гостей
type RSVPHandler struct {
	guestService *service.GuestService
}

// NewRSVPHandler создает новый RSVP-обработчик
func NewRSVPHandler(guestService *service.GuestService) *RSVPHandler {
	return &RSVPHandler{guestService: guestService}
}

// GetGuest возвращает запись гостя по коду доступа
func (h *RSVPHandler) GetGuest(c *gin.Context) {
	accessCode := c.Param("accessCode")

	guest, err := h.guestService.GetGuest(accessCode)
	if err != nil {
		h.handleRSVPError(c, err)
		return
	}

	c.JSON(http.StatusOK, guest.ToMap())
}

// UpdateGuestRequest представляет частичное обновление записи гостя
type UpdateGuestRequest struct {
	Data map[string]string `json:"data" binding:"required"`
}

// UpdateGuest накладывает обновление на запись гостя
func (h *RSVPHandler) UpdateGuest(c *gin.Context) {
	accessCode := c.Param("accessCode")

	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := h.guestService.UpdateGuest(accessCode, req.Data)
	if err != nil {
		h.handleRSVPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guest updated successfully", "guest": guest.ToMap()})
}

// handleRSVPError преобразует ошибки RSVP-сервиса в HTTP-статусы
func (h *RSVPHandler) handleRSVPError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in RSVPHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
