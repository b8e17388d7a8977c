package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	"github.com/yourusername/wedding-trivia/internal/handler/dto"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
	"github.com/yourusername/wedding-trivia/internal/service/gamemanager"
)

// Размер стороны QR-кода в пикселях
const qrSize = 256

// GameHandler обрабатывает запросы игры: команды, ответы, статус
// и управляющие операции админа
type GameHandler struct {
	engine    *gamemanager.Engine
	publicURL string
}

// NewGameHandler создает новый обработчик игры.
// publicURL — адрес, кодируемый в QR для подключения команд; пустая
// строка — адрес выводится из Host входящего запроса.
func NewGameHandler(engine *gamemanager.Engine, publicURL string) *GameHandler {
	return &GameHandler{
		engine:    engine,
		publicURL: publicURL,
	}
}

// RegisterTeamRequest представляет запрос на регистрацию команды
type RegisterTeamRequest struct {
	TeamName string `json:"team_name" binding:"required"`
}

// RegisterTeam обрабатывает регистрацию новой команды
func (h *GameHandler) RegisterTeam(c *gin.Context) {
	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.engine.RegisterTeam(req.TeamName)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RegisterTeamResponse{
		Success:  true,
		TeamID:   team.ID,
		TeamName: team.Name,
	})
}

// SubmitAnswerRequest представляет отправку ответа командой.
// Answer — указатель, чтобы binding required пропускал вариант 0.
type SubmitAnswerRequest struct {
	TeamName string `json:"team_name" binding:"required"`
	Answer   *int   `json:"answer" binding:"required"`
}

// SubmitAnswer обрабатывает ответ команды на активный вопрос
func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.engine.SubmitAnswer(req.TeamName, *req.Answer); err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Answer submitted"})
}

// GetStatus возвращает текущий статус игры для опрашивающих клиентов
func (h *GameHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewStatusResponse(h.engine.Status()))
}

// StartQuestion запускает текущий вопрос (операция админа)
func (h *GameHandler) StartQuestion(c *gin.Context) {
	if err := h.engine.StartQuestion(); err != nil {
		h.handleGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ShowAnswer показывает правильный ответ и начисляет очки (операция админа)
func (h *GameHandler) ShowAnswer(c *gin.Context) {
	result := h.engine.RevealAnswer()
	c.JSON(http.StatusOK, dto.RevealResponse{
		Success:      true,
		CorrectTeams: result.CorrectTeams,
		TopScores:    dto.NewScoreList(result.TopScores),
	})
}

// StartIntermission запускает паузу перед следующим вопросом (операция админа)
func (h *GameHandler) StartIntermission(c *gin.Context) {
	if err := h.engine.StartIntermission(); err != nil {
		h.handleGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// NextQuestion переходит к следующему вопросу, минуя паузу (операция админа)
func (h *GameHandler) NextQuestion(c *gin.Context) {
	result := h.engine.NextQuestion()
	c.JSON(http.StatusOK, dto.AdvanceResponse{
		Success:         true,
		CurrentQuestion: result.CurrentQuestion,
		GameComplete:    result.GameComplete,
	})
}

// GetScores возвращает таблицу результатов
func (h *GameHandler) GetScores(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ScoresResponse{
		Scores: dto.NewScoreList(h.engine.Scores()),
	})
}

// ResetGame полностью сбрасывает игру (операция админа)
func (h *GameHandler) ResetGame(c *gin.Context) {
	h.engine.Reset()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportScores выгружает таблицу результатов в CSV или XLSX
func (h *GameHandler) ExportScores(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	scores := h.engine.Scores()

	switch format {
	case "csv":
		h.exportCSV(c, scores)
	case "xlsx":
		h.exportXLSX(c, scores)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
	}
}

// exportCSV выгружает результаты в CSV
func (h *GameHandler) exportCSV(c *gin.Context, scores []entity.ScoreEntry) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="trivia-scores.csv"`)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Rank", "Team", "Score"})
	for i, entry := range scores {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(entry.TeamName),
			strconv.Itoa(entry.Score),
		})
	}
}

// exportXLSX выгружает результаты в Excel с использованием StreamWriter
func (h *GameHandler) exportXLSX(c *gin.Context, scores []entity.ScoreEntry) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="trivia-scores.xlsx"`)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Scores"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[GameHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Rank", "Team", "Score"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[GameHandler] Ошибка записи заголовков: %v", err)
	}

	for i, entry := range scores {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{i + 1, sanitizeForExcel(entry.TeamName), entry.Score}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[GameHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[GameHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[GameHandler] Ошибка записи Excel в response: %v", err)
	}
}

// JoinQR отдает PNG с QR-кодом на страницу подключения команд
func (h *GameHandler) JoinQR(c *gin.Context) {
	url := h.publicURL
	if url == "" {
		url = "http://" + c.Request.Host + "/game"
	}

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		log.Printf("[GameHandler] Ошибка генерации QR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// handleGameError преобразует ошибки движка в HTTP-статусы
func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in GameHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
