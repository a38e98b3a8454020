package main

import (
	"fmt"
	"log"

	"tracker-bot/internal/config"
	"tracker-bot/internal/database"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("🚀 Starting database migrations...")

	// Создаем таблицы и запускаем миграции
	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("✅ All migrations completed successfully!")
}
