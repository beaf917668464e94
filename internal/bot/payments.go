package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/models"
	"github.com/corpusfit/corpus-bot/internal/services/reconciler"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

// sendPlanInvoice выставляет инвойс на выбранный тариф. При активной
// подписке инвойс не выставляется: вместо него уходит статус подписки.
func (b *Bot) sendPlanInvoice(ctx context.Context, log *slog.Logger, msg *telegram.Message, plan *models.Plan) error {
	sub, err := b.recon.RequestInvoice(ctx, msg.From.ID, plan)
	if errors.Is(err, reconciler.ErrAlreadySubscribed) {
		text := "У Вас уже есть активная подписка ✅\nМожете открывать любые тренировки."
		if sub != nil {
			text = "У Вас уже есть активная подписка ✅\n\n" +
				"Начало: " + formatDate(sub.StartDate) + "\n" +
				"Окончание: " + formatDate(sub.EndDate) + "\n\n" +
				"Можете открывать любые тренировки."
		}
		return b.reply(ctx, msg.Chat.ID, text, kbMain())
	}
	if err != nil {
		return err
	}

	_, err = b.api.SendInvoice(ctx, telegram.SendInvoiceRequest{
		ChatID:      msg.Chat.ID,
		Title:       plan.Title,
		Description: "Разовый платёж за доступ ко всем тренировкам бота.",
		Payload:     plan.Payload,
		Currency:    "XTR",
		Prices: []telegram.LabeledPrice{
			{Label: plan.Title, Amount: plan.PriceStars},
		},
	})
	if err != nil {
		return err
	}
	log.Info("invoice sent", slog.String("plan", plan.Key))
	return nil
}

// handlePreCheckout — синхронное подтверждение перед списанием Stars.
func (b *Bot) handlePreCheckout(ctx context.Context, log *slog.Logger, q *telegram.PreCheckoutQuery) error {
	if err := b.recon.ValidatePreCheckout(q.InvoicePayload); err != nil {
		log.Warn("pre-checkout rejected",
			slog.Int64("user_id", q.From.ID),
			slog.String("payload", q.InvoicePayload))
		return b.api.AnswerPreCheckoutQuery(ctx, q.ID, false,
			"Неизвестный платёж. Попробуйте ещё раз или напишите в /paysupport.")
	}
	return b.api.AnswerPreCheckoutQuery(ctx, q.ID, true, "")
}

// handleSuccessfulPayment зачисляет подтверждённый платёж и отвечает
// пользователю окном подписки. Дубликат подтверждения отвечает тем же
// текстом, но повторного продления не делает.
func (b *Bot) handleSuccessfulPayment(ctx context.Context, log *slog.Logger, msg *telegram.Message) error {
	sp := msg.SuccessfulPayment

	sub, credited, err := b.recon.Credit(ctx, msg.From.ID,
		sp.TelegramPaymentChargeID, sp.InvoicePayload, sp.TotalAmount, sp.Currency)
	if errors.Is(err, reconciler.ErrUnknownPlan) {
		log.Warn("unknown payment received",
			slog.String("payload", sp.InvoicePayload),
			slog.String("currency", sp.Currency))
		return b.reply(ctx, msg.Chat.ID, "Получен неизвестный платёж. Напишите в /paysupport.", kbMain())
	}
	if err != nil {
		return err
	}
	if !credited {
		log.Warn("duplicate payment confirmation",
			slog.String("charge_id", sp.TelegramPaymentChargeID))
	}

	text := "Оплата прошла успешно ✅\nВаша подписка активирована.\n\n" +
		"Теперь Вам доступен полный набор тренировок."
	if sub != nil {
		text = "Оплата прошла успешно ✅\nВаша подписка активирована.\n\n" +
			"Начало: " + formatDate(sub.StartDate) + "\n" +
			"Окончание: " + formatDate(sub.EndDate) + "\n\n" +
			"Теперь Вам доступен полный набор тренировок."
	}
	if err := b.reply(ctx, msg.Chat.ID, text, kbMain()); err != nil {
		log.Error("failed to confirm payment to user", sl.Err(err))
	}
	return nil
}
