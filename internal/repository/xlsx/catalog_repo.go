package xlsx

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
)

// Колонки книги каталога: Category | Question | Option 1..4 | Correct | Points
const (
	colCategory = iota
	colQuestion
	colOption1
	colOption2
	colOption3
	colOption4
	colCorrect
	colPoints
)

// CatalogRepo загружает каталог вопросов из книги Excel
type CatalogRepo struct {
	path      string
	sheetName string
}

// NewCatalogRepo создает репозиторий каталога для указанной книги
func NewCatalogRepo(path, sheetName string) *CatalogRepo {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &CatalogRepo{path: path, sheetName: sheetName}
}

// LoadQuestions читает все вопросы из книги.
// Первая строка — заголовок, пустые строки пропускаются.
func (r *CatalogRepo) LoadQuestions() ([]entity.Question, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheetName, err)
	}

	var questions []entity.Question
	for i, row := range rows {
		if i == 0 {
			continue // заголовок
		}
		if isBlankRow(row) {
			continue
		}

		question, err := parseQuestionRow(row)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", i+1, err)
		}
		questions = append(questions, *question)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: catalog workbook contains no questions", apperrors.ErrValidation)
	}

	log.Printf("[CatalogRepo] Загружено %d вопросов из %s", len(questions), r.path)
	return questions, nil
}

// parseQuestionRow собирает вопрос из строки книги
func parseQuestionRow(row []string) (*entity.Question, error) {
	text := cellAt(row, colQuestion)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is empty", apperrors.ErrValidation)
	}

	var options []string
	for col := colOption1; col <= colOption4; col++ {
		if opt := cellAt(row, col); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: question needs at least 2 options", apperrors.ErrValidation)
	}

	correct, err := strconv.Atoi(cellAt(row, colCorrect))
	if err != nil {
		return nil, fmt.Errorf("%w: correct option is not a number", apperrors.ErrValidation)
	}
	if correct < 0 || correct >= len(options) {
		return nil, fmt.Errorf("%w: correct option %d out of range", apperrors.ErrValidation, correct)
	}

	points, err := strconv.Atoi(cellAt(row, colPoints))
	if err != nil || points <= 0 {
		return nil, fmt.Errorf("%w: point value must be a positive number", apperrors.ErrValidation)
	}

	return &entity.Question{
		Category:      cellAt(row, colCategory),
		Text:          text,
		Options:       options,
		CorrectOption: correct,
		PointValue:    points,
	}, nil
}

// cellAt возвращает значение ячейки с защитой от коротких строк
// (GetRows обрезает пустой хвост строки)
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
