package tracker

import (
	"strings"
	"testing"
	"time"

	"tracker-bot/internal/models"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0h 0min"},
		{5 * time.Minute, "0h 5min"},
		{90 * time.Minute, "1h 30min"},
		{26*time.Hour + 59*time.Second, "26h 0min"},
		{-time.Hour, "0h 0min"}, // отрицательное обрезается
	}

	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%v): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestDailyReportNoDay(t *testing.T) {
	day := NewDayState()
	got := DailyReport(day, time.Now())
	if got != "First mark 🟢 Woke up." {
		t.Errorf("Expected woke-up prompt, got %q", got)
	}
}

func TestDailyReportContent(t *testing.T) {
	day := NewDayState()
	wake := time.Date(2025, 6, 1, 8, 15, 0, 0, time.UTC)
	now := wake.Add(5 * time.Hour)

	day.BeginDay(wake)
	day.Start(models.ActivityCoding, wake.Add(time.Hour))

	got := DailyReport(day, now)

	for _, want := range []string{
		"📊 Daily Report",
		"Woke up: 08:15",
		"Sleep time: not yet",
		"Alive: 5h 0min",
		"• Coding: 4h 0min",
		"• Contribution (X/DC): 0h 0min",
		"Now: Coding (since 09:15)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, got)
		}
	}
}

func TestDailyReportIdempotent(t *testing.T) {
	day := NewDayState()
	wake := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := wake.Add(3 * time.Hour)

	day.BeginDay(wake)
	day.Start(models.ActivitySoft, wake.Add(time.Hour))

	first := DailyReport(day, now)
	second := DailyReport(day, now)

	if first != second {
		t.Error("Expected identical report text for identical (state, now)")
	}
	// Отчёт не должен записывать время текущей активности в Totals
	if day.Totals[models.ActivitySoft] != 0 {
		t.Errorf("Expected totals untouched by report, got %v", day.Totals[models.ActivitySoft])
	}
	if !day.Running() {
		t.Error("Expected activity to keep running after report")
	}
}

func TestDailyReportAfterSleep(t *testing.T) {
	day := NewDayState()
	wake := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	sleep := wake.Add(15 * time.Hour)

	day.BeginDay(wake)
	if _, _, err := day.EndDay(sleep); err != nil {
		t.Fatalf("Unexpected EndDay error: %v", err)
	}

	// Alive фиксируется отметкой сна, now дальше не влияет
	got := DailyReport(day, sleep.Add(2*time.Hour))
	for _, want := range []string{"Sleep time: 23:00", "Alive: 15h 0min"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, got)
		}
	}
}

func TestRangeReportEmpty(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	got := RangeReport("📊 Last 7 days", models.RangeAggregate{}, start, end)
	want := "📊 Last 7 days\n\nNo finished days in this period."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRangeReportAverages(t *testing.T) {
	agg := models.RangeAggregate{
		Alive:   32 * time.Hour,
		Contrib: 4 * time.Hour,
		Soft:    time.Hour,
		Hands:   30 * time.Minute,
		Coding:  6 * time.Hour,
		Days:    2,
	}
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got := RangeReport("📊 Month 2025-06", agg, start, end)

	for _, want := range []string{
		"Period: 2025-06-01 – 2025-06-02",
		"Days: 2",
		"Alive total: 32h 0min",
		"• Contribution: 4h 0min",
		"  - Soft: 1h 0min",
		"  - Hands: 0h 30min",
		"• Coding: 6h 0min",
		"Per day (avg):",
		"• Alive: 16h 0min",
		"• Abuse Hands: 0h 15min",
		"• Coding: 3h 0min",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, got)
		}
	}
}

func TestAggregate(t *testing.T) {
	// Пустой набор — нулевые суммы и Days = 0
	empty := Aggregate(nil)
	if empty.Days != 0 || empty.Alive != 0 {
		t.Errorf("Expected zero aggregate, got %+v", empty)
	}

	records := []models.FinishedDay{
		{UserID: 1, Date: "2025-06-01", Alive: 16 * time.Hour, Contrib: time.Hour, Coding: 2 * time.Hour},
		{UserID: 1, Date: "2025-06-02", Alive: 14 * time.Hour, Soft: 30 * time.Minute, Hands: 15 * time.Minute},
	}

	agg := Aggregate(records)
	if agg.Days != 2 {
		t.Errorf("Expected 2 days, got %d", agg.Days)
	}
	if agg.Alive != 30*time.Hour {
		t.Errorf("Expected alive 30h, got %v", agg.Alive)
	}
	if agg.Contrib != time.Hour || agg.Soft != 30*time.Minute || agg.Hands != 15*time.Minute || agg.Coding != 2*time.Hour {
		t.Errorf("Unexpected activity sums: %+v", agg)
	}
}
