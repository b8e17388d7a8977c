package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	"github.com/yourusername/wedding-trivia/internal/service/gamemanager"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

func handlerTestQuestions() []entity.Question {
	return []entity.Question{
		{
			Category:      "History",
			Text:          "Where did the couple meet?",
			Options:       []string{"College", "Work", "A party", "Online"},
			CorrectOption: 1,
			PointValue:    100,
		},
		{
			Category:      "Traditions",
			Text:          "What does something blue symbolize?",
			Options:       []string{"Luck", "Fidelity", "Wealth", "Health"},
			CorrectOption: 1,
			PointValue:    200,
		},
	}
}

func newTestGameHandler() *GameHandler {
	engine := gamemanager.NewEngine(handlerTestQuestions(), gamemanager.DefaultConfig(), time.Now)
	return NewGameHandler(engine, "")
}

// ============================================================================
// Регистрация команд
// ============================================================================

func TestRegisterTeamHandler_Success(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Table 5", resp["team_name"])
	assert.Equal(t, float64(1), resp["team_id"])
}

func TestRegisterTeamHandler_Duplicate(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, w := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["error"], "already")
}

func TestRegisterTeamHandler_ValidationErrors(t *testing.T) {
	handler := newTestGameHandler()

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing team_name",
			body:       map[string]string{"name": "Table 5"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "whitespace team_name",
			body:       map[string]string{"team_name": "   "},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/game/register", tt.body)
			handler.RegisterTeam(c)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// ============================================================================
// Отправка ответов
// ============================================================================

func TestSubmitAnswerHandler_Success(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, _ = newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)

	c, w := newTestGinContext("POST", "/api/game/answer", map[string]interface{}{
		"team_name": "Table 5",
		"answer":    1,
	})
	handler.SubmitAnswer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["success"])
}

// Вариант 0 — валидный ответ; binding required не должен его отсекать
func TestSubmitAnswerHandler_OptionZero(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, _ = newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)

	c, w := newTestGinContext("POST", "/api/game/answer", map[string]interface{}{
		"team_name": "Table 5",
		"answer":    0,
	})
	handler.SubmitAnswer(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitAnswerHandler_NoActiveQuestion(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, w := newTestGinContext("POST", "/api/game/answer", map[string]interface{}{
		"team_name": "Table 5",
		"answer":    1,
	})
	handler.SubmitAnswer(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitAnswerHandler_UnknownTeam(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)

	c, w := newTestGinContext("POST", "/api/game/answer", map[string]interface{}{
		"team_name": "Ghosts",
		"answer":    1,
	})
	handler.SubmitAnswer(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ============================================================================
// Статус игры
// ============================================================================

func TestGetStatusHandler_Idle(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("GET", "/api/game/status", nil)
	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, false, resp["game_active"])
	assert.Equal(t, "idle", resp["phase"])
	assert.Equal(t, float64(2), resp["total_questions"])
	assert.Nil(t, resp["question"])
}

func TestGetStatusHandler_ActiveQuestionHidesAnswer(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)

	c, w := newTestGinContext("GET", "/api/game/status", nil)
	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["game_active"])
	assert.Equal(t, "answering", resp["phase"])

	question, ok := resp["question"].(map[string]interface{})
	require.True(t, ok, "question should be present")
	assert.Equal(t, "Where did the couple meet?", question["question"])
	// Правильный ответ не раскрывается до show-answer
	_, hasCorrect := question["correct"]
	assert.False(t, hasCorrect)
}

func TestGetStatusHandler_RevealExposesAnswer(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)

	c, _ = newTestGinContext("POST", "/api/game/show-answer", nil)
	handler.ShowAnswer(c)

	c, w := newTestGinContext("GET", "/api/game/status", nil)
	handler.GetStatus(c)

	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["show_answer"])
	question, ok := resp["question"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), question["correct"])
}

// ============================================================================
// Управляющие операции
// ============================================================================

func TestStartQuestionHandler_Conflict(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestShowAnswerHandler_ReturnsCorrectTeams(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, _ = newTestGinContext("POST", "/api/game/start-question", nil)
	handler.StartQuestion(c)

	c, _ = newTestGinContext("POST", "/api/game/answer", map[string]interface{}{
		"team_name": "Table 5",
		"answer":    1,
	})
	handler.SubmitAnswer(c)

	c, w := newTestGinContext("POST", "/api/game/show-answer", nil)
	handler.ShowAnswer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["success"])

	correctTeams, ok := resp["correct_teams"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Table 5"}, correctTeams)
}

func TestNextQuestionHandler_GameComplete(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("POST", "/api/game/next-question", nil)
	handler.NextQuestion(c)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, false, resp["game_complete"])
	assert.Equal(t, float64(1), resp["current_question"])

	c, w = newTestGinContext("POST", "/api/game/next-question", nil)
	handler.NextQuestion(c)
	resp = parseJSONResponse(t, w)
	assert.Equal(t, true, resp["game_complete"])
}

func TestResetGameHandler(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, w := newTestGinContext("POST", "/api/game/reset", nil)
	handler.ResetGame(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestGinContext("GET", "/api/game/status", nil)
	handler.GetStatus(c)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, float64(0), resp["teams_count"])
}

// ============================================================================
// Экспорт и QR
// ============================================================================

func TestExportScoresHandler_CSV(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "Table 5"})
	handler.RegisterTeam(c)

	c, w := newTestGinContext("GET", "/api/game/scores/export?format=csv", nil)
	handler.ExportScores(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Rank,Team,Score", strings.TrimSpace(lines[0]))
	assert.Equal(t, "1,Table 5,0", strings.TrimSpace(lines[1]))
}

func TestExportScoresHandler_CSVSanitizesFormulas(t *testing.T) {
	handler := newTestGameHandler()

	c, _ := newTestGinContext("POST", "/api/game/register", map[string]string{"team_name": "=HYPERLINK(\"evil\")"})
	handler.RegisterTeam(c)

	c, w := newTestGinContext("GET", "/api/game/scores/export", nil)
	handler.ExportScores(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `'=HYPERLINK`)
}

func TestExportScoresHandler_XLSX(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("GET", "/api/game/scores/export?format=xlsx", nil)
	handler.ExportScores(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestExportScoresHandler_UnsupportedFormat(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("GET", "/api/game/scores/export?format=pdf", nil)
	handler.ExportScores(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoinQRHandler(t *testing.T) {
	handler := newTestGameHandler()

	c, w := newTestGinContext("GET", "/api/game/qr", nil)
	c.Request.Host = "example.com:8090"
	handler.JoinQR(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic bytes
	require.True(t, w.Body.Len() > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])
}
