package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout — формат календарной даты, он же ключ в daily_stats
	DateLayout = "2006-01-02"
	// ClockLayout — формат времени суток в сообщениях
	ClockLayout = "15:04"
)

// FormatDate форматирует календарную дату в YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock форматирует время суток как HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// WeekRange возвращает диапазон "последние 7 дней": [today-6, today].
func WeekRange(today time.Time) (time.Time, time.Time) {
	return today.AddDate(0, 0, -6), today
}

// MonthRange возвращает первый и последний день месяца.
// Невозможный календарный месяц — ошибка.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month: %d-%02d", year, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	// день 0 следующего месяца — последний день этого
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
	return first, last, nil
}
