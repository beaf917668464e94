package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/services/reconciler"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

const adminOnlyText = "Эта команда только для администратора бота."

func (b *Bot) handleCommand(ctx context.Context, log *slog.Logger, msg *telegram.Message) error {
	fields := strings.Fields(msg.Text)
	command := fields[0]
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	args := fields[1:]

	switch command {
	case "/start":
		if err := b.telemetry.IncrementStarts(ctx, msg.From.ID); err != nil {
			log.Warn("failed to increment starts counter", sl.Err(err))
		}
		return b.sendStart(ctx, msg)
	case "/menu", "/меню":
		return b.sendStart(ctx, msg)
	case "/terms":
		return b.reply(ctx, msg.Chat.ID, termsText, nil)
	case "/paysupport":
		return b.reply(ctx, msg.Chat.ID, paySupportText, nil)
	case "/grant":
		return b.cmdGrant(ctx, log, msg, args)
	case "/revoke":
		return b.cmdRevoke(ctx, log, msg, args)
	case "/refund":
		return b.cmdRefund(ctx, log, msg, args)
	case "/subs":
		return b.cmdSubs(ctx, msg)
	case "/stats":
		return b.cmdStats(ctx, msg)
	case "/restart":
		return b.cmdRestart(ctx, log, msg)
	}
	return b.reply(ctx, msg.Chat.ID, "Выберите пункт меню 👇", kbMain())
}

// cmdGrant выдаёт подписку вручную, без записи в журнал платежей.
// Без аргумента срока берётся длительность первого тарифа.
func (b *Bot) cmdGrant(ctx context.Context, log *slog.Logger, msg *telegram.Message, args []string) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, adminOnlyText, nil)
	}
	if len(args) < 1 || len(args) > 2 {
		return b.reply(ctx, msg.Chat.ID,
			"Использование:\n/grant <user_id> [days]\n\n"+
				"user_id — Telegram ID пользователя,\n"+
				"days — срок в днях (по умолчанию длительность тарифа).", nil)
	}

	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return b.reply(ctx, msg.Chat.ID, "user_id должен быть числом.", nil)
	}

	days := 0
	if len(b.plans) > 0 {
		days = b.plans[0].DurationDays
	}
	if len(args) == 2 {
		days, err = strconv.Atoi(args[1])
		if err != nil || days <= 0 {
			return b.reply(ctx, msg.Chat.ID, "days должен быть положительным числом.", nil)
		}
	}

	sub, err := b.recon.Grant(ctx, targetID, days)
	if err != nil {
		log.Error("manual grant failed", slog.Int64("target_id", targetID), sl.Err(err))
		return b.reply(ctx, msg.Chat.ID, "Не удалось выдать подписку ❌", nil)
	}

	return b.reply(ctx, msg.Chat.ID, fmt.Sprintf(
		"Подписка выдана ✅\nПользователь: %d\nНачало: %s\nОкончание: %s",
		targetID, formatDate(sub.StartDate), formatDate(sub.EndDate)), nil)
}

func (b *Bot) cmdRevoke(ctx context.Context, log *slog.Logger, msg *telegram.Message, args []string) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, adminOnlyText, nil)
	}
	if len(args) != 1 {
		return b.reply(ctx, msg.Chat.ID, "Использование:\n/revoke <user_id>", nil)
	}

	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return b.reply(ctx, msg.Chat.ID, "user_id должен быть числом.", nil)
	}

	if err := b.recon.RevokeManual(ctx, targetID); err != nil {
		log.Error("manual revoke failed", slog.Int64("target_id", targetID), sl.Err(err))
		return b.reply(ctx, msg.Chat.ID, "Не удалось отключить подписку ❌", nil)
	}
	return b.reply(ctx, msg.Chat.ID,
		fmt.Sprintf("Подписка пользователя %d отключена ✅", targetID), nil)
}

// cmdRefund возвращает платёж Stars и отзывает подписку. Сначала рефанд
// подтверждает шлюз, и только потом меняется локальное состояние.
func (b *Bot) cmdRefund(ctx context.Context, log *slog.Logger, msg *telegram.Message, args []string) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, adminOnlyText, nil)
	}
	if len(args) != 2 {
		return b.reply(ctx, msg.Chat.ID,
			"Использование:\n/refund <user_id> <charge_id>\n\n"+
				"user_id — Telegram ID покупателя,\n"+
				"charge_id — telegram_payment_charge_id из журнала платежей.", nil)
	}

	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return b.reply(ctx, msg.Chat.ID, "user_id должен быть числом.", nil)
	}
	chargeID := args[1]

	err = b.recon.Refund(ctx, targetID, chargeID)

	var stale *reconciler.StaleEntitlementError
	switch {
	case errors.As(err, &stale):
		log.Error("refund confirmed but revoke failed",
			slog.Int64("target_id", targetID), sl.Err(err))
		return b.reply(ctx, msg.Chat.ID,
			"Рефанд прошёл, но подписку отключить не удалось.\n"+
				"Отключите её вручную: /revoke "+args[0], nil)
	case err != nil:
		log.Warn("refund failed", slog.Int64("target_id", targetID), sl.Err(err))
		return b.reply(ctx, msg.Chat.ID,
			"Не удалось выполнить рефанд ❌\n"+
				"Проверь user_id и charge_id, либо попробуй позже.", nil)
	}

	return b.reply(ctx, msg.Chat.ID, fmt.Sprintf(
		"Рефанд выполнен успешно ✅\nПодписка пользователя %d отключена.\n\ncharge_id: %s",
		targetID, chargeID), nil)
}

func (b *Bot) cmdSubs(ctx context.Context, msg *telegram.Message) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, adminOnlyText, nil)
	}

	reports, err := b.ents.Report(ctx)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return b.reply(ctx, msg.Chat.ID, "Подписок пока нет.", nil)
	}

	var sb strings.Builder
	sb.WriteString("📄 Список подписок:\n\n")
	for _, r := range reports {
		status := "🔴 Истекла"
		if r.Subscription.ActiveOn(todayUTC()) {
			status = "🟢 Активна"
		}
		fmt.Fprintf(&sb, "User ID: %d\n— Начало: %s\n— Конец: %s\n— Статус: %s\n",
			r.Subscription.UserID,
			formatDate(r.Subscription.StartDate),
			formatDate(r.Subscription.EndDate),
			status)
		if p := r.LastPayment; p != nil {
			fmt.Fprintf(&sb, "— 💸 Последний платёж:\n   charge_id: %s\n   сумма: %d %s\n   дата: %s\n",
				p.ChargeID, p.Amount, p.Currency, p.PaidAt.Format("02.01.2006 15:04"))
		} else {
			sb.WriteString("— 💸 Платежей нет\n")
		}
		sb.WriteString("\n")
	}
	return b.reply(ctx, msg.Chat.ID, sb.String(), nil)
}

func (b *Bot) cmdStats(ctx context.Context, msg *telegram.Message) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, adminOnlyText, nil)
	}

	stats, err := b.telemetry.ListUserStats(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return b.reply(ctx, msg.Chat.ID, "Статистики пока нет.", nil)
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика использования:\n\n")
	for _, s := range stats {
		name := s.Username
		if name == "" {
			name = "—"
		}
		fmt.Fprintf(&sb, "User ID: %d (@%s)\n— первый визит: %s\n— последний визит: %s\n— запусков: %d\n— открыто тренировок: %d\n\n",
			s.UserID, name,
			formatDate(s.FirstSeen), formatDate(s.LastSeen),
			s.StartsCount, s.TrainingsOpened)
	}
	return b.reply(ctx, msg.Chat.ID, sb.String(), nil)
}

// cmdRestart останавливает приложение. Супервизор процесса поднимет его
// заново с чистым состоянием.
func (b *Bot) cmdRestart(ctx context.Context, log *slog.Logger, msg *telegram.Message) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, adminOnlyText, nil)
	}
	if err := b.reply(ctx, msg.Chat.ID, "Перезапускаюсь ♻️", nil); err != nil {
		log.Warn("failed to confirm restart", sl.Err(err))
	}
	log.Info("restart requested by admin")
	b.restart()
	return nil
}
