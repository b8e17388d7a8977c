package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/wedding-trivia/internal/config"
	"github.com/yourusername/wedding-trivia/internal/domain/repository"
	"github.com/yourusername/wedding-trivia/internal/handler"
	memRepo "github.com/yourusername/wedding-trivia/internal/repository/memory"
	xlsxRepo "github.com/yourusername/wedding-trivia/internal/repository/xlsx"
	"github.com/yourusername/wedding-trivia/internal/service"
	"github.com/yourusername/wedding-trivia/internal/service/gamemanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Выбираем источник вопросов: книга Excel или встроенный каталог
	var catalogRepo repository.CatalogRepository
	if cfg.Game.CatalogPath != "" {
		log.Printf("Загрузка вопросов из %s (лист %s)", cfg.Game.CatalogPath, cfg.Game.CatalogSheet)
		catalogRepo = xlsxRepo.NewCatalogRepo(cfg.Game.CatalogPath, cfg.Game.CatalogSheet)
	} else {
		log.Println("Путь к каталогу вопросов не задан, используется встроенный каталог")
		catalogRepo = memRepo.NewCatalogRepo()
	}

	questions, err := catalogRepo.LoadQuestions()
	if err != nil {
		log.Printf("Failed to load questions: %v", err)
		os.Exit(1)
	}
	log.Printf("Загружено вопросов: %d", len(questions))

	// Инициализируем игровой движок
	gameConfig := &gamemanager.Config{
		QuestionTimeLimitSec: cfg.Game.QuestionTimeLimitSec,
		IntermissionSec:      cfg.Game.IntermissionSec,
	}
	engine := gamemanager.NewEngine(questions, gameConfig, time.Now)

	// Инициализируем обработчики
	gameHandler := handler.NewGameHandler(engine, cfg.Game.PublicURL)

	// RSVP-модуль включается только при заданном пути к книге гостей
	var rsvpHandler *handler.RSVPHandler
	if cfg.RSVP.WorkbookPath != "" {
		log.Printf("RSVP: книга гостей %s (лист %s)", cfg.RSVP.WorkbookPath, cfg.RSVP.SheetName)
		guestRepo := xlsxRepo.NewGuestRepo(cfg.RSVP.WorkbookPath, cfg.RSVP.SheetName)
		guestService := service.NewGuestService(guestRepo)
		rsvpHandler = handler.NewRSVPHandler(guestService)
	} else {
		log.Println("RSVP: путь к книге гостей не задан, модуль выключен")
	}

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS: клиенты — страницы на телефонах гостей и экран админа
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статические файлы: страница игры для гостей и экран админа
	router.StaticFS("/game", http.Dir("./static/game"))
	router.StaticFS("/admin", http.Dir("./static/admin"))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		game := api.Group("/game")
		{
			// Маршруты команд
			game.POST("/register", gameHandler.RegisterTeam)
			game.POST("/answer", gameHandler.SubmitAnswer)
			game.GET("/status", gameHandler.GetStatus)
			game.GET("/scores", gameHandler.GetScores)
			game.GET("/qr", gameHandler.JoinQR)

			// Управляющие маршруты админа
			game.POST("/start-question", gameHandler.StartQuestion)
			game.POST("/show-answer", gameHandler.ShowAnswer)
			game.POST("/start-intermission", gameHandler.StartIntermission)
			game.POST("/next-question", gameHandler.NextQuestion)
			game.POST("/reset", gameHandler.ResetGame)
			game.GET("/scores/export", gameHandler.ExportScores)
		}

		if rsvpHandler != nil {
			rsvp := api.Group("/rsvp")
			{
				rsvp.GET("/:accessCode", rsvpHandler.GetGuest)
				rsvp.PUT("/:accessCode", rsvpHandler.UpdateGuest)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем сигнала остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
