package tracker

import (
	"fmt"
	"strings"
	"time"

	"tracker-bot/internal/models"
	"tracker-bot/internal/utils"
)

// FormatDuration форматирует длительность как "XhYmin".
// Отрицательные значения обрезаются до нуля.
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dmin", hours, minutes)
}

// DailyReport строит дневной отчёт по состоянию на момент now.
// Чистое чтение: повторный вызов с теми же аргументами даёт тот же
// текст и не меняет состояние.
func DailyReport(d *DayState, now time.Time) string {
	if d.WakeTime == nil {
		return "First mark 🟢 Woke up."
	}

	totals := d.EffectiveTotals(now)

	var lines []string
	lines = append(lines, "📊 Daily Report")
	lines = append(lines, fmt.Sprintf("Woke up: %s", utils.FormatClock(*d.WakeTime)))
	if d.SleepTime != nil {
		lines = append(lines, fmt.Sprintf("Sleep time: %s", utils.FormatClock(*d.SleepTime)))
	} else {
		lines = append(lines, "Sleep time: not yet")
	}
	lines = append(lines, fmt.Sprintf("Alive: %s", FormatDuration(d.Alive(now))))
	lines = append(lines, "")
	lines = append(lines, "Work:")
	lines = append(lines, fmt.Sprintf("• Contribution (X/DC): %s", FormatDuration(totals[models.ActivityContrib])))
	lines = append(lines, "• Abuse:")
	lines = append(lines, fmt.Sprintf("  - Soft (Retro/Free): %s", FormatDuration(totals[models.ActivitySoft])))
	lines = append(lines, fmt.Sprintf("  - Hands (Retro/Free): %s", FormatDuration(totals[models.ActivityHands])))
	lines = append(lines, fmt.Sprintf("• Coding: %s", FormatDuration(totals[models.ActivityCoding])))

	if d.Running() {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Now: %s (since %s)", d.Current.Name(), utils.FormatClock(*d.CurrentStart)))
	}

	return strings.Join(lines, "\n")
}

// RangeReport строит отчёт по диапазону дней: суммы и средние за день.
// Пустой диапазон — обычный ответ, не ошибка.
func RangeReport(title string, agg models.RangeAggregate, start, end time.Time) string {
	if agg.Days == 0 {
		return fmt.Sprintf("%s\n\nNo finished days in this period.", title)
	}

	days := time.Duration(agg.Days)

	var lines []string
	lines = append(lines, title)
	lines = append(lines, fmt.Sprintf("Period: %s – %s", utils.FormatDate(start), utils.FormatDate(end)))
	lines = append(lines, fmt.Sprintf("Days: %d", agg.Days))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Alive total: %s", FormatDuration(agg.Alive)))
	lines = append(lines, "")
	lines = append(lines, "Work total:")
	lines = append(lines, fmt.Sprintf("• Contribution: %s", FormatDuration(agg.Contrib)))
	lines = append(lines, "• Abuse:")
	lines = append(lines, fmt.Sprintf("  - Soft: %s", FormatDuration(agg.Soft)))
	lines = append(lines, fmt.Sprintf("  - Hands: %s", FormatDuration(agg.Hands)))
	lines = append(lines, fmt.Sprintf("• Coding: %s", FormatDuration(agg.Coding)))
	lines = append(lines, "")
	lines = append(lines, "Per day (avg):")
	lines = append(lines, fmt.Sprintf("• Alive: %s", FormatDuration(agg.Alive/days)))
	lines = append(lines, fmt.Sprintf("• Contribution: %s", FormatDuration(agg.Contrib/days)))
	lines = append(lines, fmt.Sprintf("• Abuse Soft: %s", FormatDuration(agg.Soft/days)))
	lines = append(lines, fmt.Sprintf("• Abuse Hands: %s", FormatDuration(agg.Hands/days)))
	lines = append(lines, fmt.Sprintf("• Coding: %s", FormatDuration(agg.Coding/days)))
	return strings.Join(lines, "\n")
}
