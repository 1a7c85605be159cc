package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"pupils-backend/config"
	"pupils-backend/database"
	"pupils-backend/handlers"
	"pupils-backend/logger"
	"pupils-backend/middleware"
	"pupils-backend/repository"
	"pupils-backend/schema"
	"pupils-backend/service"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	log.Info().Msg("🚀 Starting Pupils Backend Server...")
	log.Info().
		Str("port", cfg.ServerPort).
		Str("driver", cfg.DBDriver).
		Msg("📋 Configuration loaded")

	// Инициализация подключения к базе данных
	store, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Error initializing database")
	}
	defer store.Close()

	if err := database.Migrate(store.Gorm, cfg.SeedClasses); err != nil {
		log.Fatal().Err(err).Msg("❌ Error migrating database")
	}

	// Инициализация сервисов и обработчиков
	svc := service.NewPupilService(
		repository.NewPupilRepository(store.Gorm),
		repository.NewClassRepository(store.SQLX),
	)
	pupilHandler := handlers.NewPupilHandler(svc, schema.NewLoader())
	classHandler := handlers.NewClassHandler(svc)
	healthHandler := handlers.NewHealthHandler(store)

	// Создание роутера
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, pupilHandler, classHandler, healthHandler)

	// Middleware снаружи роутера, чтобы preflight и 404 тоже проходили через них
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Chain(r),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("✅ Server successfully started")
		log.Info().Msgf("🌐 Available at: http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Forced shutdown")
	}
	log.Info().Msg("👋 Server stopped")
}
