package main

import (
	"context"
	"log"

	"github.com/weshockley/rest-service/internal/app"
	"github.com/weshockley/rest-service/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Собираем граф зависимостей
	application, err := app.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	// Блокируется до SIGINT/SIGTERM и graceful shutdown
	if err := application.Run(context.Background()); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}
