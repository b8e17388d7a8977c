package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния игры
	// (например, попытка стартовать вопрос, пока активен другой).
	ErrConflict = errors.New("resource state conflict")
)

// Ошибки игрового движка. Оборачивают общие sentinel-ошибки,
// чтобы маппинг errors.Is -> HTTP-статус в хэндлерах работал без изменений.
var (
	// ErrEmptyTeamName возвращается при регистрации с пустым именем команды.
	ErrEmptyTeamName = fmt.Errorf("%w: team name required", ErrValidation)

	// ErrTeamExists возвращается при повторной регистрации имени команды.
	ErrTeamExists = fmt.Errorf("%w: team name already taken", ErrConflict)

	// ErrUnknownTeam возвращается, когда команда не зарегистрирована.
	ErrUnknownTeam = fmt.Errorf("%w: team not registered", ErrNotFound)

	// ErrAnswersLocked возвращается при попытке ответить вне окна приема ответов.
	ErrAnswersLocked = fmt.Errorf("%w: answers are locked", ErrConflict)

	// ErrNoMoreQuestions возвращается при старте вопроса за пределами каталога.
	ErrNoMoreQuestions = fmt.Errorf("%w: no more questions", ErrConflict)
)
