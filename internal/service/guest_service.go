package service

import (
	"log"
	"strings"

	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	"github.com/yourusername/wedding-trivia/internal/domain/repository"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
)

// GuestService предоставляет методы для работы с RSVP-записями гостей
type GuestService struct {
	guestRepo repository.GuestRepository
}

// NewGuestService создает новый RSVP-сервис
func NewGuestService(guestRepo repository.GuestRepository) *GuestService {
	return &GuestService{guestRepo: guestRepo}
}

// GetGuest возвращает запись гостя по коду доступа
func (s *GuestService) GetGuest(accessCode string) (*entity.Guest, error) {
	accessCode = strings.TrimSpace(accessCode)
	if accessCode == "" {
		return nil, apperrors.ErrValidation
	}
	return s.guestRepo.GetByAccessCode(accessCode)
}

// UpdateGuest накладывает частичное обновление на запись гостя и сохраняет ее.
// Код доступа не меняется; неизвестные поля игнорируются.
func (s *GuestService) UpdateGuest(accessCode string, updates map[string]string) (*entity.Guest, error) {
	guest, err := s.GetGuest(accessCode)
	if err != nil {
		return nil, err
	}

	guest.ApplyUpdates(updates)
	if err := s.guestRepo.Update(guest); err != nil {
		return nil, err
	}

	log.Printf("[GuestService] Запись гостя %s обновлена (%d полей)", accessCode, len(updates))
	return guest, nil
}
