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

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/config"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/handler"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/middleware"
	pgRepo "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/repository/postgres"
	redisRepo "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/repository/redis"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/battlemanager"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/progression"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/pkg/database"
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

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории поверх единого KV-хранилища
	store := pgRepo.NewKVStore(db)
	subjectRepo := pgRepo.NewSubjectRepo(store)
	enemyRepo := pgRepo.NewEnemyRepo(store)
	resultRepo := pgRepo.NewResultRepo(store)
	characterRepo := pgRepo.NewCharacterRepo(store)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// --- Инициализация конфигурации BattleManager ---
	battleConfig := battlemanager.DefaultConfig()
	if cfg.Battle.MasteryThresholdPercent > 0 {
		battleConfig.MasteryThresholdPercent = cfg.Battle.MasteryThresholdPercent
	}
	if cfg.Battle.ReadyPromotionDays > 0 {
		battleConfig.ReadyPromotionDays = cfg.Battle.ReadyPromotionDays
	}
	if cfg.Battle.MaxPromotionPoints > 0 {
		battleConfig.MaxPromotionPoints = cfg.Battle.MaxPromotionPoints
	}
	if len(cfg.Battle.ReviewIntervalDays) > 0 {
		battleConfig.ReviewIntervalDays = cfg.Battle.ReviewIntervalDays
	}

	scheduler := battlemanager.NewReviewScheduler(battleConfig)
	lifecycle := battlemanager.NewLifecycle(battleConfig, scheduler)
	engine := progression.NewEngine()

	// Создаем контекст с отменой для корректного завершения фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем сервисы
	subjectService := service.NewSubjectService(subjectRepo, resultRepo)
	enemyService := service.NewEnemyService(enemyRepo, cacheRepo, subjectService, lifecycle, scheduler)
	progressionService := service.NewProgressionService(characterRepo, resultRepo, cacheRepo, engine, cfg.Progression.CharacterCacheTTLSec)
	quizService := service.NewQuizService(enemyRepo, resultRepo, subjectService, progressionService, lifecycle)
	analyticsService := service.NewAnalyticsService(resultRepo, enemyRepo, subjectService, cacheRepo)

	// Инициализируем обработчики
	subjectHandler := handler.NewSubjectHandler(subjectService)
	enemyHandler := handler.NewEnemyHandler(enemyService)
	quizHandler := handler.NewQuizHandler(quizService)
	characterHandler := handler.NewCharacterHandler(progressionService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Запускаем фоновый обход авто-продвижения готовых врагов (раз в час).
	// Обход идемпотентен: очки начисляются не чаще раза в календарный день,
	// а распределенная блокировка защищает от параллельных инстансов.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Запуск периодического обхода авто-продвижения (каждый час)")

		for {
			select {
			case <-ticker.C:
				promoted, err := enemyService.CheckReadyEnemies(time.Now())
				if err != nil {
					if errors.Is(err, service.ErrSweepAlreadyRunning) {
						log.Println("Обход авто-продвижения уже выполняется другим инстансом, пропускаю")
						continue
					}
					log.Printf("Ошибка обхода авто-продвижения: %v", err)
					continue
				}
				if promoted > 0 {
					log.Printf("Обход авто-продвижения: продвинуто врагов: %d", promoted)
				}
			case <-ctx.Done():
				log.Println("Завершение работы горутины авто-продвижения")
				return
			}
		}
	}()

	// Инициализируем rate limiter и роутер Gin
	rateLimiter := middleware.NewRateLimiter(redisClient)
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	readLimit := rateLimiter.Limit(middleware.DefaultAPIRateLimitConfig())
	writeLimit := rateLimiter.Limit(middleware.WriteRateLimitConfig())

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Предметы и банк вопросов
		subjects := api.Group("/subjects")
		{
			subjects.GET("", readLimit, subjectHandler.GetSubjects)
			subjects.POST("", writeLimit, subjectHandler.CreateSubject)

			subjectWithID := subjects.Group("/:id")
			subjectWithID.Use(middleware.ExtractUUIDParam("id", "subjectID"))
			{
				subjectWithID.POST("/topics", writeLimit, subjectHandler.AddTopic)

				topicWithID := subjectWithID.Group("/topics/:topicId")
				topicWithID.Use(middleware.ExtractUUIDParam("topicId", "topicID"))
				{
					topicWithID.POST("/subtopics", writeLimit, subjectHandler.AddSubTopic)
					topicWithID.POST("/questions", writeLimit, subjectHandler.AddQuestion)
				}
			}
		}

		// Враги
		enemies := api.Group("/enemies")
		{
			enemies.GET("", readLimit, enemyHandler.GetEnemies)
			enemies.POST("", writeLimit, enemyHandler.CreateEnemy)
			enemies.POST("/promotion-sweep", writeLimit, enemyHandler.RunPromotionSweep)
			enemies.GET("/reviews/today", readLimit, enemyHandler.GetReviewsDueToday)
			enemies.GET("/reviews/upcoming", readLimit, enemyHandler.GetReviewsDueFuture)

			enemyWithID := enemies.Group("/:id")
			enemyWithID.Use(middleware.ExtractUUIDParam("id", "enemyID"))
			{
				enemyWithID.POST("/promote", writeLimit, enemyHandler.PromoteEnemy)
				enemyWithID.POST("/retreat", writeLimit, enemyHandler.RetreatEnemy)
				enemyWithID.GET("/quiz", readLimit, quizHandler.StartQuiz)
				enemyWithID.POST("/quiz/complete", writeLimit, quizHandler.CompleteQuiz)
			}
		}

		// Персонаж
		character := api.Group("/character")
		{
			character.GET("", readLimit, characterHandler.GetCharacter)
			character.POST("/rebuild", writeLimit, characterHandler.RebuildCharacter)
			character.POST("/achievements", writeLimit, characterHandler.UnlockAchievement)
			character.POST("/challenges", writeLimit, characterHandler.CompleteChallenge)
		}

		// Аналитика
		analytics := api.Group("/analytics")
		{
			analytics.GET("/summary", readLimit, analyticsHandler.GetSummary)
			analytics.GET("/export", readLimit, analyticsHandler.ExportSummary)
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

	// После получения сигнала SIGINT или SIGTERM вызываем cancel() для завершения горутин
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
