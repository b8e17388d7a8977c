package entity

import "time"

// Team представляет зарегистрированную команду.
// Имя — первичный ключ (чувствительно к регистру), ID назначается
// последовательно в порядке регистрации, начиная с 1.
type Team struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// AnswerRecord хранит последний ответ команды на текущий вопрос.
// Повторная отправка той же командой перезаписывает предыдущую (last write wins).
type AnswerRecord struct {
	SelectedOption int       `json:"answer"`
	SubmittedAt    time.Time `json:"timestamp"`
}

// ScoreEntry представляет строку таблицы результатов
type ScoreEntry struct {
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
}
