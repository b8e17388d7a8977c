package repository

import "github.com/yourusername/wedding-trivia/internal/domain/entity"

// GuestRepository определяет методы для работы с RSVP-записями гостей
type GuestRepository interface {
	// GetByAccessCode возвращает запись гостя по коду доступа
	GetByAccessCode(accessCode string) (*entity.Guest, error)

	// Update сохраняет измененную запись гостя
	Update(guest *entity.Guest) error
}
