package tracker

import (
	"errors"
	"time"

	"tracker-bot/internal/models"
	"tracker-bot/internal/utils"
)

var (
	// ErrNoActiveDay — день не начат (не было "Woke up")
	ErrNoActiveDay = errors.New("no active day")
	// ErrNotActive — пауза запрошена для активности, которая сейчас не идёт
	ErrNotActive = errors.New("activity is not active")
	// ErrActivityRunning — resume при уже запущенной активности
	ErrActivityRunning = errors.New("another activity is running")
)

// DayState представляет текущий день одного пользователя.
// Живёт только в памяти; в БД уходит итог через Finished.
// Инвариант: CurrentStart != nil ⇔ идёт активность Current.
type DayState struct {
	WakeTime     *time.Time
	SleepTime    *time.Time
	Current      models.Activity // валидно только при CurrentStart != nil
	CurrentStart *time.Time
	Totals       map[models.Activity]time.Duration
}

func NewDayState() *DayState {
	return &DayState{Totals: zeroTotals()}
}

func zeroTotals() map[models.Activity]time.Duration {
	totals := make(map[models.Activity]time.Duration, len(models.Activities))
	for _, a := range models.Activities {
		totals[a] = 0
	}
	return totals
}

// Running сообщает, идёт ли сейчас какая-нибудь активность.
func (d *DayState) Running() bool {
	return d.CurrentStart != nil
}

// BeginDay начинает новый день: ставит отметку пробуждения и обнуляет
// накопленное. Незакрытая активность прошлого дня отбрасывается —
// корректно закрытый день уже сохранён через EndDay.
func (d *DayState) BeginDay(now time.Time) {
	d.WakeTime = &now
	d.SleepTime = nil
	d.Totals = zeroTotals()
	d.CurrentStart = nil
}

// EndDay ставит отметку сна. Если шла активность, она закрывается,
// и её вид возвращается для уведомления об авто-паузе.
func (d *DayState) EndDay(now time.Time) (models.Activity, bool, error) {
	if d.WakeTime == nil {
		return 0, false, ErrNoActiveDay
	}
	d.SleepTime = &now
	closed, wasRunning := d.CloseCurrent(now)
	return closed, wasRunning, nil
}

// CloseCurrent закрывает текущую активность, добавляя прошедшее время
// в Totals. Отрицательный интервал (сбой часов) обрезается до нуля.
// Без активности — no-op.
func (d *DayState) CloseCurrent(now time.Time) (models.Activity, bool) {
	if d.CurrentStart == nil {
		return 0, false
	}
	elapsed := now.Sub(*d.CurrentStart)
	if elapsed < 0 {
		elapsed = 0
	}
	closed := d.Current
	d.Totals[closed] += elapsed
	d.CurrentStart = nil
	return closed, true
}

// Start запускает активность kind, предварительно закрыв текущую
// (авто-пауза: одновременно идёт не больше одной). Возвращает закрытый
// вид для уведомления. Работает и до отметки "Woke up".
func (d *DayState) Start(kind models.Activity, now time.Time) (models.Activity, bool) {
	closed, wasRunning := d.CloseCurrent(now)
	d.Current = kind
	d.CurrentStart = &now
	return closed, wasRunning
}

// Pause закрывает активность kind. Если идёт не она — ErrNotActive.
func (d *DayState) Pause(kind models.Activity, now time.Time) error {
	if d.CurrentStart == nil || d.Current != kind {
		return ErrNotActive
	}
	d.CloseCurrent(now)
	return nil
}

// Resume продолжает активность kind после паузы. Достижимо только из
// состояния без активности; запущенная активность не перезаписывается
// молча, а возвращается ErrActivityRunning.
func (d *DayState) Resume(kind models.Activity, now time.Time) error {
	if d.CurrentStart != nil {
		return ErrActivityRunning
	}
	d.Current = kind
	d.CurrentStart = &now
	return nil
}

// Alive возвращает время от пробуждения до сна (или до now, пока день
// не закрыт). Отрицательное значение обрезается до нуля.
func (d *DayState) Alive(now time.Time) time.Duration {
	if d.WakeTime == nil {
		return 0
	}
	end := now
	if d.SleepTime != nil {
		end = *d.SleepTime
	}
	alive := end.Sub(*d.WakeTime)
	if alive < 0 {
		alive = 0
	}
	return alive
}

// EffectiveTotals возвращает копию Totals с добавленным временем
// текущей активности. Состояние не меняется — отчёты read-only.
func (d *DayState) EffectiveTotals(now time.Time) map[models.Activity]time.Duration {
	totals := make(map[models.Activity]time.Duration, len(d.Totals))
	for a, v := range d.Totals {
		totals[a] = v
	}
	if d.CurrentStart != nil {
		extra := now.Sub(*d.CurrentStart)
		if extra < 0 {
			extra = 0
		}
		totals[d.Current] += extra
	}
	return totals
}

// Finished собирает запись завершенного дня для сохранения.
// Вызывается после EndDay; день датируется датой пробуждения.
func (d *DayState) Finished(userID int64, now time.Time) *models.FinishedDay {
	return &models.FinishedDay{
		UserID:  userID,
		Date:    utils.FormatDate(*d.WakeTime),
		Alive:   d.Alive(now),
		Contrib: d.Totals[models.ActivityContrib],
		Soft:    d.Totals[models.ActivitySoft],
		Hands:   d.Totals[models.ActivityHands],
		Coding:  d.Totals[models.ActivityCoding],
	}
}
