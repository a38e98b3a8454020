package database

import (
	"database/sql"
	"fmt"
	"time"

	"tracker-bot/internal/models"
	"tracker-bot/internal/tracker"

	_ "github.com/lib/pq"
)

type Database struct {
	db *sql.DB
}

func New(databaseURL string) (*Database, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Настраиваем пул соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// CreateTables создает таблицы в базе данных, если они не существуют
func (d *Database) CreateTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS daily_stats (
			user_id BIGINT NOT NULL,
			date TEXT NOT NULL,
			alive_seconds INTEGER NOT NULL DEFAULT 0,
			contrib_seconds INTEGER NOT NULL DEFAULT 0,
			soft_seconds INTEGER NOT NULL DEFAULT 0,
			hands_seconds INTEGER NOT NULL DEFAULT 0,
			coding_seconds INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, date)
		)`

	if _, err := d.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	// Запускаем миграции для обновления схемы
	if err := d.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// UpsertFinishedDay сохраняет итог завершенного дня.
// Повторный "Sleep time" за ту же дату перезаписывает запись.
func (d *Database) UpsertFinishedDay(day *models.FinishedDay) error {
	query := `
		INSERT INTO daily_stats (user_id, date, alive_seconds, contrib_seconds, soft_seconds, hands_seconds, coding_seconds, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, date)
		DO UPDATE SET
			alive_seconds = EXCLUDED.alive_seconds,
			contrib_seconds = EXCLUDED.contrib_seconds,
			soft_seconds = EXCLUDED.soft_seconds,
			hands_seconds = EXCLUDED.hands_seconds,
			coding_seconds = EXCLUDED.coding_seconds,
			updated_at = NOW()
	`

	_, err := d.db.Exec(query,
		day.UserID, day.Date,
		int64(day.Alive.Seconds()),
		int64(day.Contrib.Seconds()),
		int64(day.Soft.Seconds()),
		int64(day.Hands.Seconds()),
		int64(day.Coding.Seconds()))
	if err != nil {
		return fmt.Errorf("failed to upsert daily stats: %w", err)
	}

	return nil
}

// SumRange выбирает завершенные дни пользователя за [start, end]
// включительно и отдаёт их агрегатору. Даты сравниваются как строки
// YYYY-MM-DD, без конверсии часовых поясов.
func (d *Database) SumRange(userID int64, start, end string) (models.RangeAggregate, error) {
	query := `
		SELECT user_id, date, alive_seconds, contrib_seconds, soft_seconds, hands_seconds, coding_seconds
		FROM daily_stats
		WHERE user_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date
	`

	rows, err := d.db.Query(query, userID, start, end)
	if err != nil {
		return models.RangeAggregate{}, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var records []models.FinishedDay
	for rows.Next() {
		var rec models.FinishedDay
		var alive, contrib, soft, hands, coding int64
		if err := rows.Scan(&rec.UserID, &rec.Date, &alive, &contrib, &soft, &hands, &coding); err != nil {
			return models.RangeAggregate{}, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		rec.Alive = time.Duration(alive) * time.Second
		rec.Contrib = time.Duration(contrib) * time.Second
		rec.Soft = time.Duration(soft) * time.Second
		rec.Hands = time.Duration(hands) * time.Second
		rec.Coding = time.Duration(coding) * time.Second
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.RangeAggregate{}, fmt.Errorf("failed to read daily stats: %w", err)
	}

	return tracker.Aggregate(records), nil
}
