package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tracker-bot/internal/config"
	"tracker-bot/internal/logger"
	"tracker-bot/internal/models"
	"tracker-bot/internal/tracker"
	"tracker-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StatsStore — то, что боту нужно от хранилища завершенных дней.
type StatsStore interface {
	UpsertFinishedDay(day *models.FinishedDay) error
	SumRange(userID int64, start, end string) (models.RangeAggregate, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	db       StatsStore
	logger   logger.Logger
	config   *config.Config
	sessions *tracker.SessionStore
}

func New(cfg *config.Config, db StatsStore, log logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.APIToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:      api,
		db:       db,
		logger:   log,
		config:   cfg,
		sessions: tracker.NewSessionStore(),
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot...")

	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			go b.handleUpdate(update)
		case <-ctx.Done():
			b.logger.Info("Bot stopped")
			return nil
		}
	}
}

// registerCommands публикует список команд в меню Telegram
func (b *Bot) registerCommands() {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start bot"},
		tgbotapi.BotCommand{Command: "menu", Description: "Show menu"},
		tgbotapi.BotCommand{Command: "week", Description: "Stats for last 7 days"},
		tgbotapi.BotCommand{Command: "month", Description: "Stats for month"},
	)
	if _, err := b.api.Request(cmds); err != nil {
		b.logger.Errorf("Failed to set bot commands: %v", err)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}

	if update.Message != nil && update.Message.IsCommand() {
		b.handleCommand(update.Message)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	b.logger.Infof("Received command from %d: %s", msg.From.ID, msg.Text)

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "menu":
		b.handleMenu(msg)
	case "week":
		b.handleWeek(msg)
	case "month":
		b.handleMonth(msg)
	default:
		b.logger.Warnf("Unknown command: %s", msg.Command())
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	text := "Daily tracker is on.\n\n" +
		"Use /menu to open panel:\n" +
		"Woke up / Sleep time / Contribution / Abuse / Coding / Daily Report.\n"
	b.reply(msg.Chat.ID, text, mainMenuKeyboard())
}

func (b *Bot) handleMenu(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, "Menu:", mainMenuKeyboard())
}

func (b *Bot) handleWeek(msg *tgbotapi.Message) {
	start, end := utils.WeekRange(time.Now())

	agg, err := b.db.SumRange(msg.From.ID, utils.FormatDate(start), utils.FormatDate(end))
	if err != nil {
		b.logger.Errorf("Failed to sum week range: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to load stats.")
		return
	}

	b.send(msg.Chat.ID, tracker.RangeReport("📊 Last 7 days", agg, start, end))
}

func (b *Bot) handleMonth(msg *tgbotapi.Message) {
	year, month, err := parseMonthArgs(msg.CommandArguments(), time.Now())
	if err != nil {
		b.send(msg.Chat.ID, "Use: /month 2025-12 or /month 12 2025")
		return
	}

	first, last, err := utils.MonthRange(year, month)
	if err != nil {
		b.send(msg.Chat.ID, "Bad month.")
		return
	}

	agg, err := b.db.SumRange(msg.From.ID, utils.FormatDate(first), utils.FormatDate(last))
	if err != nil {
		b.logger.Errorf("Failed to sum month range: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to load stats.")
		return
	}

	title := fmt.Sprintf("📊 Month %d-%02d", year, month)
	b.send(msg.Chat.ID, tracker.RangeReport(title, agg, first, last))
}

// parseMonthArgs разбирает аргументы /month: пусто — текущий месяц,
// "YYYY-MM" одним токеном или "MM YYYY" двумя. Календарная
// корректность проверяется дальше, в utils.MonthRange.
func parseMonthArgs(args string, now time.Time) (int, int, error) {
	fields := strings.Fields(args)

	switch len(fields) {
	case 0:
		return now.Year(), int(now.Month()), nil
	case 1:
		parts := strings.SplitN(fields[0], "-", 2)
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("malformed month argument: %q", fields[0])
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("malformed year: %q", parts[0])
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("malformed month: %q", parts[1])
		}
		return year, month, nil
	case 2:
		month, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, fmt.Errorf("malformed month: %q", fields[0])
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("malformed year: %q", fields[1])
		}
		return year, month, nil
	default:
		return 0, 0, fmt.Errorf("too many arguments: %q", args)
	}
}

// outgoing — один ответ на интент: текст и клавиатура к нему
type outgoing struct {
	text   string
	markup *tgbotapi.InlineKeyboardMarkup
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Errorf("Failed to answer callback: %v", err)
	}

	if query.Message == nil {
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	now := time.Now()

	b.logger.Infof("Received callback from %d: %s", userID, query.Data)

	// Состояние пользователя меняется только под блокировкой его
	// сессии; ответы отправляются уже после выхода из Do.
	var replies []outgoing
	b.sessions.Get(userID).Do(func(day *tracker.DayState) {
		replies = b.dispatchIntent(day, userID, query.Data, now)
	})

	for _, r := range replies {
		m := tgbotapi.NewMessage(chatID, r.text)
		if r.markup != nil {
			m.ReplyMarkup = *r.markup
		}
		if _, err := b.api.Send(m); err != nil {
			b.logger.Errorf("Failed to send message to chat %d: %v", chatID, err)
		}
	}
}

func (b *Bot) dispatchIntent(day *tracker.DayState, userID int64, data string, now time.Time) []outgoing {
	switch {
	case data == "show_menu":
		return []outgoing{menuReply("Menu:", mainMenuKeyboard())}

	case data == "abuse_menu":
		return []outgoing{menuReply("Abuse mode:", abuseKeyboard())}

	case data == "woke_up":
		day.BeginDay(now)
		text := fmt.Sprintf("🟢 Woke up at %s.", utils.FormatClock(now))
		return []outgoing{menuReply(text, mainMenuKeyboard())}

	case data == "sleep_time":
		return b.endDay(day, userID, now)

	case data == "daily_report":
		return []outgoing{menuReply(tracker.DailyReport(day, now), mainMenuKeyboard())}

	case strings.HasPrefix(data, "start_"):
		kind, ok := models.ParseActivity(strings.TrimPrefix(data, "start_"))
		if !ok {
			b.logger.Warnf("Unknown activity in callback: %s", data)
			return nil
		}
		return []outgoing{b.startActivity(day, kind, now)}

	case strings.HasPrefix(data, "pause_"):
		kind, ok := models.ParseActivity(strings.TrimPrefix(data, "pause_"))
		if !ok {
			b.logger.Warnf("Unknown activity in callback: %s", data)
			return nil
		}
		return []outgoing{b.pauseActivity(day, kind, now)}

	case strings.HasPrefix(data, "continue_"):
		kind, ok := models.ParseActivity(strings.TrimPrefix(data, "continue_"))
		if !ok {
			b.logger.Warnf("Unknown activity in callback: %s", data)
			return nil
		}
		return []outgoing{b.continueActivity(day, kind, now)}

	default:
		b.logger.Warnf("Unknown callback: %s", data)
		return nil
	}
}

// endDay ставит отметку сна, сохраняет итог дня и строит финальный
// отчёт. Ошибка записи в БД не откатывает состояние и не ретраится —
// пользователь видит общий текст ошибки.
func (b *Bot) endDay(day *tracker.DayState, userID int64, now time.Time) []outgoing {
	closed, wasRunning, err := day.EndDay(now)
	if errors.Is(err, tracker.ErrNoActiveDay) {
		return []outgoing{menuReply("First mark 🟢 Woke up.", mainMenuKeyboard())}
	}

	text := fmt.Sprintf("😴 Sleep time at %s.", utils.FormatClock(now))
	if wasRunning {
		text += fmt.Sprintf("\nAuto pause: %s.", closed.Name())
	}
	replies := []outgoing{menuReply(text, mainMenuKeyboard())}

	if err := b.db.UpsertFinishedDay(day.Finished(userID, now)); err != nil {
		b.logger.Errorf("Failed to save daily stats for user %d: %v", userID, err)
		replies = append(replies, outgoing{text: "❌ Failed to save daily stats."})
	}

	replies = append(replies, menuReply(tracker.DailyReport(day, now), mainMenuKeyboard()))
	return replies
}

func (b *Bot) startActivity(day *tracker.DayState, kind models.Activity, now time.Time) outgoing {
	closed, wasRunning := day.Start(kind, now)
	text := fmt.Sprintf("▶️ Start %s at %s.", kind.Name(), utils.FormatClock(now))
	if wasRunning {
		text += fmt.Sprintf("\nAuto pause: %s.", closed.Name())
	}
	return menuReply(text, activityKeyboard(kind))
}

func (b *Bot) pauseActivity(day *tracker.DayState, kind models.Activity, now time.Time) outgoing {
	if err := day.Pause(kind, now); errors.Is(err, tracker.ErrNotActive) {
		return menuReply(fmt.Sprintf("%s is not active.", kind.Name()), pausedKeyboard(kind))
	}
	return menuReply(fmt.Sprintf("⏸ Pause %s at %s.", kind.Name(), utils.FormatClock(now)), pausedKeyboard(kind))
}

func (b *Bot) continueActivity(day *tracker.DayState, kind models.Activity, now time.Time) outgoing {
	if err := day.Resume(kind, now); errors.Is(err, tracker.ErrActivityRunning) {
		running := day.Current
		return menuReply(fmt.Sprintf("⏸ Pause %s first.", running.Name()), activityKeyboard(running))
	}
	return menuReply(fmt.Sprintf("▶️ Continue %s at %s.", kind.Name(), utils.FormatClock(now)), activityKeyboard(kind))
}

func menuReply(text string, markup tgbotapi.InlineKeyboardMarkup) outgoing {
	return outgoing{text: text, markup: &markup}
}

func (b *Bot) reply(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = markup
	if _, err := b.api.Send(m); err != nil {
		b.logger.Errorf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(m); err != nil {
		b.logger.Errorf("Failed to send message to chat %d: %v", chatID, err)
	}
}
