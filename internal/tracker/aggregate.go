package tracker

import "tracker-bot/internal/models"

// Aggregate суммирует записи завершенных дней в итог диапазона.
// Пустой срез даёт нулевые суммы и Days = 0.
func Aggregate(records []models.FinishedDay) models.RangeAggregate {
	var agg models.RangeAggregate
	for i := range records {
		rec := &records[i]
		agg.Alive += rec.Alive
		agg.Contrib += rec.Contrib
		agg.Soft += rec.Soft
		agg.Hands += rec.Hands
		agg.Coding += rec.Coding
		agg.Days++
	}
	return agg
}
