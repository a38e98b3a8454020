package models

import "time"

// Activity — вид активности. Закрытый набор из четырёх видов,
// везде матчится исчерпывающим switch.
type Activity int

const (
	ActivityContrib Activity = iota
	ActivitySoft
	ActivityHands
	ActivityCoding
)

// Activities перечисляет все виды в порядке вывода в отчётах.
var Activities = []Activity{ActivityContrib, ActivitySoft, ActivityHands, ActivityCoding}

// Code возвращает короткий тег, используемый в callback data и колонках БД.
func (a Activity) Code() string {
	switch a {
	case ActivityContrib:
		return "contrib"
	case ActivitySoft:
		return "soft"
	case ActivityHands:
		return "hands"
	case ActivityCoding:
		return "coding"
	}
	return "unknown"
}

// Name возвращает человекочитаемое название для сообщений.
func (a Activity) Name() string {
	switch a {
	case ActivityContrib:
		return "Contribution (X/DC)"
	case ActivitySoft:
		return "Abuse Soft (Retro/Free)"
	case ActivityHands:
		return "Abuse Hands (Retro/Free)"
	case ActivityCoding:
		return "Coding"
	}
	return "Unknown"
}

// ParseActivity разбирает тег с границы callback data.
func ParseActivity(code string) (Activity, bool) {
	for _, a := range Activities {
		if a.Code() == code {
			return a, true
		}
	}
	return 0, false
}

// FinishedDay представляет сохранённый итог одного завершенного дня
type FinishedDay struct {
	UserID int64  `json:"user_id" db:"user_id"`
	Date   string `json:"date" db:"date"` // YYYY-MM-DD, дата пробуждения

	Alive   time.Duration `json:"alive" db:"alive_seconds"`
	Contrib time.Duration `json:"contrib" db:"contrib_seconds"`
	Soft    time.Duration `json:"soft" db:"soft_seconds"`
	Hands   time.Duration `json:"hands" db:"hands_seconds"`
	Coding  time.Duration `json:"coding" db:"coding_seconds"`
}

// ActivityTotal возвращает длительность по виду активности.
func (f *FinishedDay) ActivityTotal(a Activity) time.Duration {
	switch a {
	case ActivityContrib:
		return f.Contrib
	case ActivitySoft:
		return f.Soft
	case ActivityHands:
		return f.Hands
	case ActivityCoding:
		return f.Coding
	}
	return 0
}

// RangeAggregate представляет суммы по диапазону завершенных дней
type RangeAggregate struct {
	Alive   time.Duration
	Contrib time.Duration
	Soft    time.Duration
	Hands   time.Duration
	Coding  time.Duration
	Days    int
}

// ActivityTotal возвращает суммарную длительность по виду активности.
func (r *RangeAggregate) ActivityTotal(a Activity) time.Duration {
	switch a {
	case ActivityContrib:
		return r.Contrib
	case ActivitySoft:
		return r.Soft
	case ActivityHands:
		return r.Hands
	case ActivityCoding:
		return r.Coding
	}
	return 0
}
