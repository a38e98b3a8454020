package utils

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tm := time.Date(2025, 12, 5, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(tm); got != "2025-12-05" {
		t.Errorf("Expected 2025-12-05, got %s", got)
	}
}

func TestFormatClock(t *testing.T) {
	tm := time.Date(2025, 12, 5, 7, 3, 0, 0, time.UTC)
	if got := FormatClock(tm); got != "07:03" {
		t.Errorf("Expected 07:03, got %s", got)
	}
}

func TestWeekRange(t *testing.T) {
	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	start, end := WeekRange(today)

	if FormatDate(start) != "2025-06-04" {
		t.Errorf("Expected start 2025-06-04, got %s", FormatDate(start))
	}
	if !end.Equal(today) {
		t.Errorf("Expected end %v, got %v", today, end)
	}
}

func TestMonthRange(t *testing.T) {
	// Тест 1: обычный месяц
	first, last, err := MonthRange(2025, 12)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if FormatDate(first) != "2025-12-01" || FormatDate(last) != "2025-12-31" {
		t.Errorf("Expected 2025-12-01..2025-12-31, got %s..%s", FormatDate(first), FormatDate(last))
	}

	// Тест 2: февраль високосного года
	_, last, err = MonthRange(2024, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if FormatDate(last) != "2024-02-29" {
		t.Errorf("Expected 2024-02-29, got %s", FormatDate(last))
	}

	// Тест 3: невозможный месяц
	if _, _, err := MonthRange(2025, 13); err == nil {
		t.Error("Expected error for month 13")
	}
	if _, _, err := MonthRange(2025, 0); err == nil {
		t.Error("Expected error for month 0")
	}
}
