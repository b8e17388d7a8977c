package dto

import (
	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	"github.com/yourusername/wedding-trivia/internal/service/gamemanager"
)

// RegisterTeamResponse — ответ на регистрацию команды
type RegisterTeamResponse struct {
	Success  bool   `json:"success"`
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
}

// QuestionResponse представляет текущий вопрос для клиента.
// Correct присутствует только после показа ответа.
type QuestionResponse struct {
	Category string   `json:"category"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  *int     `json:"correct,omitempty"`
	Points   int      `json:"points"`
}

// ScoreEntryResponse — строка таблицы результатов
type ScoreEntryResponse struct {
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
}

// StatusResponse — снимок состояния игры для опрашивающих клиентов
type StatusResponse struct {
	GameActive       bool                 `json:"game_active"`
	Phase            string               `json:"phase"`
	CurrentQuestion  int                  `json:"current_question"`
	TotalQuestions   int                  `json:"total_questions"`
	Question         *QuestionResponse    `json:"question"`
	TimeRemaining    int                  `json:"time_remaining"`
	IntermissionTime int                  `json:"intermission_time"`
	InIntermission   bool                 `json:"in_intermission"`
	ShowAnswer       bool                 `json:"show_answer"`
	AnswersLocked    bool                 `json:"answers_locked"`
	TeamsCount       int                  `json:"teams_count"`
	Scores           []ScoreEntryResponse `json:"scores"`
}

// RevealResponse — результат показа правильного ответа
type RevealResponse struct {
	Success      bool                 `json:"success"`
	CorrectTeams []string             `json:"correct_teams"`
	TopScores    []ScoreEntryResponse `json:"top_scores"`
}

// AdvanceResponse — результат перехода к следующему вопросу
type AdvanceResponse struct {
	Success         bool `json:"success"`
	CurrentQuestion int  `json:"current_question"`
	GameComplete    bool `json:"game_complete"`
}

// ScoresResponse — таблица результатов
type ScoresResponse struct {
	Scores []ScoreEntryResponse `json:"scores"`
}

// NewStatusResponse создает DTO снимка состояния
func NewStatusResponse(status *gamemanager.Status) *StatusResponse {
	resp := &StatusResponse{
		GameActive:       status.GameActive,
		Phase:            string(status.Phase),
		CurrentQuestion:  status.CurrentQuestion,
		TotalQuestions:   status.TotalQuestions,
		TimeRemaining:    status.TimeRemaining,
		IntermissionTime: status.IntermissionTime,
		InIntermission:   status.InIntermission,
		ShowAnswer:       status.ShowAnswer,
		AnswersLocked:    status.AnswersLocked,
		TeamsCount:       status.TeamsCount,
		Scores:           NewScoreList(status.Scores),
	}
	if status.Question != nil {
		resp.Question = &QuestionResponse{
			Category: status.Question.Category,
			Question: status.Question.Text,
			Options:  status.Question.Options,
			Correct:  status.Question.CorrectOption,
			Points:   status.Question.PointValue,
		}
	}
	return resp
}

// NewScoreList создает DTO таблицы результатов
func NewScoreList(entries []entity.ScoreEntry) []ScoreEntryResponse {
	scores := make([]ScoreEntryResponse, len(entries))
	for i, entry := range entries {
		scores[i] = ScoreEntryResponse{TeamName: entry.TeamName, Score: entry.Score}
	}
	return scores
}
