package gamemanager

import (
	"time"

	"github.com/yourusername/wedding-trivia/internal/domain/entity"
)

// Константы длительностей по умолчанию (в секундах)
const (
	DefaultQuestionTimeLimitSec = 30
	DefaultIntermissionSec      = 30
)

// Phase представляет текущую стадию игры
type Phase string

const (
	// PhaseIdle — вопрос не активен: до первого старта, после reset
	// или в ожидании старта следующего вопроса.
	PhaseIdle Phase = "idle"

	// PhaseAnswering — таймер вопроса идет, ответы принимаются.
	PhaseAnswering Phase = "answering"

	// PhaseLocked — время вышло или ответы закрыты админом; ответы не принимаются.
	PhaseLocked Phase = "locked"

	// PhaseRevealed — правильный ответ показан, очки начислены.
	PhaseRevealed Phase = "revealed"

	// PhaseIntermission — пауза перед следующим вопросом.
	PhaseIntermission Phase = "intermission"

	// PhaseCompleted — терминальное состояние: все вопросы сыграны.
	PhaseCompleted Phase = "completed"
)

// Clock возвращает текущее время. Инжектируется для детерминированных
// тестов таймингов; в продакшене — time.Now.
type Clock func() time.Time

// Config содержит настройки игрового движка
type Config struct {
	// QuestionTimeLimitSec — окно приема ответов на вопрос, в секундах
	QuestionTimeLimitSec int

	// IntermissionSec — пауза между вопросами, в секундах
	IntermissionSec int
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuestionTimeLimitSec: DefaultQuestionTimeLimitSec,
		IntermissionSec:      DefaultIntermissionSec,
	}
}

// QuestionView представляет текущий вопрос в снимке состояния.
// CorrectOption заполняется только когда ответ показан.
type QuestionView struct {
	Category      string
	Text          string
	Options       []string
	CorrectOption *int
	PointValue    int
}

// Status — снимок публичного состояния игры, возвращаемый Status()
// и мутирующими операциями
type Status struct {
	GameActive       bool
	Phase            Phase
	CurrentQuestion  int
	TotalQuestions   int
	Question         *QuestionView
	TimeRemaining    int
	IntermissionTime int
	InIntermission   bool
	ShowAnswer       bool
	AnswersLocked    bool
	TeamsCount       int
	Scores           []entity.ScoreEntry
}

// RevealResult — результат показа правильного ответа
type RevealResult struct {
	CorrectTeams []string
	TopScores    []entity.ScoreEntry
}

// AdvanceResult — результат принудительного перехода к следующему вопросу
type AdvanceResult struct {
	CurrentQuestion int
	GameComplete    bool
}
