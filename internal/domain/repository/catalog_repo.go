package repository

import "github.com/yourusername/wedding-trivia/internal/domain/entity"

// CatalogRepository определяет методы загрузки каталога вопросов.
// Каталог загружается один раз при старте и далее не меняется.
type CatalogRepository interface {
	// LoadQuestions возвращает упорядоченный список вопросов
	LoadQuestions() ([]entity.Question, error)
}
