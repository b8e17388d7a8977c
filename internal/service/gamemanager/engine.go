package gamemanager

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
)

// Engine владеет всем изменяемым состоянием игры: каталогом вопросов,
// указателем прогресса, таймингами, реестром команд и очками.
// Все операции сериализуются одним мьютексом; фоновых таймеров нет —
// истечение окон вычисляется лениво при каждом обращении, сравнением
// времени старта фазы с текущим временем.
type Engine struct {
	questions []entity.Question
	config    *Config
	clock     Clock

	mu sync.Mutex

	gameActive      bool
	phase           Phase
	phaseStart      time.Time
	currentQuestion int
	answersLocked   bool
	showAnswer      bool

	// scored гарантирует ровно один проход начисления очков на вопрос,
	// независимо от того, сработал ли автолок, явный показ ответа или оба
	scored       bool
	correctTeams []string

	teams     map[string]*entity.Team
	teamOrder []string
	scores    map[string]int
	answers   map[string]entity.AnswerRecord
}

// NewEngine создает игровой движок с заданным каталогом вопросов.
// Нулевые config/clock заменяются значениями по умолчанию.
func NewEngine(questions []entity.Question, config *Config, clock Clock) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if clock == nil {
		clock = time.Now
	}

	e := &Engine{
		questions: questions,
		config:    config,
		clock:     clock,
		phase:     PhaseIdle,
		teams:     make(map[string]*entity.Team),
		scores:    make(map[string]int),
		answers:   make(map[string]entity.AnswerRecord),
	}

	log.Printf("[GameEngine] Движок инициализирован: %d вопросов, окно ответа %dс, пауза %dс",
		len(questions), config.QuestionTimeLimitSec, config.IntermissionSec)
	return e
}

// TotalQuestions возвращает размер каталога
func (e *Engine) TotalQuestions() int {
	return len(e.questions)
}

// resolvePending разрешает отложенные переходы, зависящие от времени.
// Вызывается под мьютексом в начале каждой операции: первый же запрос
// после истечения окна наблюдает залоченное/продвинутое состояние.
func (e *Engine) resolvePending(now time.Time) {
	switch e.phase {
	case PhaseAnswering:
		elapsed := now.Sub(e.phaseStart)
		if elapsed >= time.Duration(e.config.QuestionTimeLimitSec)*time.Second {
			e.answersLocked = true
			e.applyScoring()
			e.phase = PhaseLocked
			log.Printf("[GameEngine] Время на вопрос #%d вышло, ответы закрыты", e.currentQuestion)
		}

	case PhaseIntermission:
		elapsed := now.Sub(e.phaseStart)
		if elapsed >= time.Duration(e.config.IntermissionSec)*time.Second {
			e.advanceLocked(false)
			log.Printf("[GameEngine] Пауза закончилась, переход к вопросу #%d", e.currentQuestion)
		}
	}
}

// applyScoring начисляет очки за текущий вопрос. Повторные вызовы —
// no-op: флаг scored сбрасывается только стартом следующего вопроса.
// Команды обходятся в порядке регистрации, чтобы список победителей
// был детерминирован.
func (e *Engine) applyScoring() {
	if e.scored || e.currentQuestion >= len(e.questions) {
		return
	}
	e.scored = true

	question := &e.questions[e.currentQuestion]
	for _, name := range e.teamOrder {
		record, ok := e.answers[name]
		if !ok {
			continue
		}
		if question.IsCorrect(record.SelectedOption) {
			e.scores[name] += question.PointValue
			e.correctTeams = append(e.correctTeams, name)
		}
	}

	log.Printf("[GameEngine] Очки за вопрос #%d начислены: %d команд ответили верно",
		e.currentQuestion, len(e.correctTeams))
}

// advanceLocked двигает указатель на следующий вопрос.
// lockAnswers=true — принудительный переход админом (ответы закрыты до
// старта), false — автопереход по окончании паузы (флаги сбрасываются).
// Индекс никогда не выходит за пределы [0, len(questions)].
func (e *Engine) advanceLocked(lockAnswers bool) {
	if e.currentQuestion < len(e.questions) {
		e.currentQuestion++
	}
	e.showAnswer = false
	e.answersLocked = lockAnswers
	e.scored = false
	e.correctTeams = nil

	if e.currentQuestion >= len(e.questions) {
		e.phase = PhaseCompleted
		e.gameActive = false
		log.Printf("[GameEngine] Все вопросы сыграны, игра завершена")
	} else {
		e.phase = PhaseIdle
	}
}

// RegisterTeam регистрирует новую команду и возвращает ее запись.
// Имя очищается от пробелов; пустое имя и дубликаты отклоняются.
func (e *Engine) RegisterTeam(name string) (*entity.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrEmptyTeamName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.teams[name]; exists {
		return nil, apperrors.ErrTeamExists
	}

	team := &entity.Team{
		ID:       len(e.teamOrder) + 1,
		Name:     name,
		JoinedAt: e.clock(),
	}
	e.teams[name] = team
	e.teamOrder = append(e.teamOrder, name)
	e.scores[name] = 0

	log.Printf("[GameEngine] Команда '%s' зарегистрирована (id=%d)", name, team.ID)
	teamCopy := *team
	return &teamCopy, nil
}

// SubmitAnswer принимает ответ команды на активный вопрос.
// Последующая отправка той же командой перезаписывает предыдущую.
// Индекс варианта принимается как есть, без проверки диапазона.
func (e *Engine) SubmitAnswer(teamName string, optionIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	e.resolvePending(now)

	if !e.gameActive || e.answersLocked || e.phase != PhaseAnswering {
		return apperrors.ErrAnswersLocked
	}
	if _, ok := e.teams[teamName]; !ok {
		return apperrors.ErrUnknownTeam
	}

	e.answers[teamName] = entity.AnswerRecord{
		SelectedOption: optionIndex,
		SubmittedAt:    now,
	}
	return nil
}

// StartQuestion запускает текущий вопрос: сбрасывает ответы, открывает
// прием, запоминает время старта. Разрешен из Idle, Revealed или
// Intermission (пауза прерывается досрочно).
func (e *Engine) StartQuestion() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	e.resolvePending(now)

	if e.currentQuestion >= len(e.questions) {
		return apperrors.ErrNoMoreQuestions
	}

	switch e.phase {
	case PhaseIdle, PhaseRevealed, PhaseIntermission:
		// переход разрешен
	default:
		return fmt.Errorf("%w: question already in progress", apperrors.ErrConflict)
	}

	e.gameActive = true
	e.phase = PhaseAnswering
	e.phaseStart = now
	e.answersLocked = false
	e.showAnswer = false
	e.scored = false
	e.correctTeams = nil
	e.answers = make(map[string]entity.AnswerRecord)

	log.Printf("[GameEngine] Вопрос #%d запущен", e.currentQuestion)
	return nil
}

// RevealAnswer показывает правильный ответ и начисляет очки.
// Идемпотентен: повторный вызов для того же вопроса возвращает тот же
// список победителей, не начисляя очки второй раз. Вне активного
// вопроса деградирует в no-op с пустым списком.
func (e *Engine) RevealAnswer() *RevealResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resolvePending(e.clock())

	switch e.phase {
	case PhaseAnswering, PhaseLocked:
		e.applyScoring()
		e.answersLocked = true
		e.showAnswer = true
		e.phase = PhaseRevealed
		log.Printf("[GameEngine] Ответ на вопрос #%d показан", e.currentQuestion)

	case PhaseRevealed:
		// уже показан — возвращаем тот же результат

	default:
		// нет активного вопроса: успех без начислений
		return &RevealResult{CorrectTeams: []string{}, TopScores: e.sortedScoresLocked()}
	}

	correct := make([]string, len(e.correctTeams))
	copy(correct, e.correctTeams)
	return &RevealResult{CorrectTeams: correct, TopScores: e.sortedScoresLocked()}
}

// StartIntermission запускает паузу перед следующим вопросом.
// Разрешен из Revealed, а также принудительно из Answering/Locked.
func (e *Engine) StartIntermission() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	e.resolvePending(now)

	switch e.phase {
	case PhaseRevealed, PhaseAnswering, PhaseLocked:
		e.phase = PhaseIntermission
		e.phaseStart = now
		log.Printf("[GameEngine] Пауза перед следующим вопросом запущена")
		return nil
	default:
		return fmt.Errorf("%w: no active question to pause after", apperrors.ErrConflict)
	}
}

// NextQuestion принудительно переходит к следующему вопросу, минуя паузу.
// Ответы остаются закрытыми до явного StartQuestion.
func (e *Engine) NextQuestion() *AdvanceResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resolvePending(e.clock())
	e.advanceLocked(true)

	return &AdvanceResult{
		CurrentQuestion: e.currentQuestion,
		GameComplete:    e.phase == PhaseCompleted,
	}
}

// Reset полностью сбрасывает игру: команды, очки, прогресс, флаги
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gameActive = false
	e.phase = PhaseIdle
	e.phaseStart = time.Time{}
	e.currentQuestion = 0
	e.answersLocked = false
	e.showAnswer = false
	e.scored = false
	e.correctTeams = nil
	e.teams = make(map[string]*entity.Team)
	e.teamOrder = nil
	e.scores = make(map[string]int)
	e.answers = make(map[string]entity.AnswerRecord)

	log.Printf("[GameEngine] Игра сброшена")
}

// Status возвращает снимок публичного состояния, предварительно разрешив
// отложенные переходы (автолок, автопереход)
func (e *Engine) Status() *Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	e.resolvePending(now)

	status := &Status{
		GameActive:      e.gameActive,
		Phase:           e.phase,
		CurrentQuestion: e.currentQuestion,
		TotalQuestions:  len(e.questions),
		InIntermission:  e.phase == PhaseIntermission,
		ShowAnswer:      e.showAnswer,
		AnswersLocked:   e.answersLocked,
		TeamsCount:      len(e.teamOrder),
		Scores:          e.sortedScoresLocked(),
	}

	switch e.phase {
	case PhaseAnswering:
		status.TimeRemaining = e.remainingSec(now, e.config.QuestionTimeLimitSec)
	case PhaseIntermission:
		status.IntermissionTime = e.remainingSec(now, e.config.IntermissionSec)
	}

	if e.gameActive && e.currentQuestion < len(e.questions) && e.phase != PhaseIntermission {
		status.Question = e.questionViewLocked()
	}

	return status
}

// Scores возвращает таблицу результатов: по убыванию очков, при
// равенстве — в порядке регистрации
func (e *Engine) Scores() []entity.ScoreEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortedScoresLocked()
}

// remainingSec возвращает остаток окна в секундах, не ниже нуля
func (e *Engine) remainingSec(now time.Time, limitSec int) int {
	elapsed := int(now.Sub(e.phaseStart) / time.Second)
	remaining := limitSec - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// questionViewLocked собирает представление текущего вопроса.
// Правильный вариант включается только после показа ответа.
func (e *Engine) questionViewLocked() *QuestionView {
	question := &e.questions[e.currentQuestion]
	view := &QuestionView{
		Category:   question.Category,
		Text:       question.Text,
		Options:    append([]string(nil), question.Options...),
		PointValue: question.PointValue,
	}
	if e.showAnswer {
		correct := question.CorrectOption
		view.CorrectOption = &correct
	}
	return view
}

// sortedScoresLocked строит отсортированную таблицу результатов.
// Исходный порядок — порядок регистрации, сортировка стабильная,
// поэтому равные очки сохраняют относительный порядок команд.
func (e *Engine) sortedScoresLocked() []entity.ScoreEntry {
	entries := make([]entity.ScoreEntry, 0, len(e.teamOrder))
	for _, name := range e.teamOrder {
		entries = append(entries, entity.ScoreEntry{TeamName: name, Score: e.scores[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
