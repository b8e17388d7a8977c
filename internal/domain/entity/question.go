package entity

// Question представляет вопрос викторины.
// Каталог неизменяем после загрузки; идентичность вопроса — его позиция в каталоге.
type Question struct {
	Category      string   `json:"category"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"-"` // Скрыто от клиента до показа ответа
	PointValue    int      `json:"points"`
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectOption
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}
