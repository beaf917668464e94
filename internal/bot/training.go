package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corpusfit/corpus-bot/internal/content"
	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/metrics"
	"github.com/corpusfit/corpus-bot/internal/services/accessgate"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

// sendTraining выдаёт одну тренировку: медиагруппа, предупреждение об
// удалении, текст плана и кнопка возврата. Всё, кроме кнопки возврата,
// ставится в очередь удаления по истечении срока хранения.
func (b *Bot) sendTraining(ctx context.Context, log *slog.Logger, msg *telegram.Message, place content.Place, month, key string) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	hasSub, err := b.ents.HasActive(ctx, userID)
	if err != nil {
		return err
	}

	trial := false
	if hasSub {
		switch err := b.gate.Allow(ctx, userID); {
		case errors.Is(err, accessgate.ErrDailyLimit):
			return b.reply(ctx, chatID,
				"Вы уже смотрели тренировку сегодня ✅\nЗавтра можно будет открыть новую.",
				kbBack())
		case err != nil:
			return err
		}
	} else {
		switch err := b.gate.AllowTrial(ctx, userID, string(place)); {
		case errors.Is(err, accessgate.ErrTrialUsed):
			return b.reply(ctx, chatID, needSubscriptionText,
				telegram.NewReplyKeyboard([]string{btnSubscription, btnBackToMenu}))
		case err != nil:
			return err
		}
		trial = true
	}

	routine, found := content.Lookup(place, month, key)

	var toDelete []int64

	if found && len(routine.Videos) > 0 {
		media := make([]telegram.InputMediaVideo, 0, len(routine.Videos))
		for _, fileID := range routine.Videos {
			media = append(media, telegram.InputMediaVideo{Type: "video", Media: fileID})
		}
		sent, err := b.api.SendMediaGroup(ctx, chatID, media, true)
		if err != nil {
			return err
		}
		for _, m := range sent {
			toDelete = append(toDelete, m.MessageID)
		}
	} else {
		m, err := b.api.SendMessage(ctx, telegram.SendMessageRequest{
			ChatID:         chatID,
			Text:           "Видео для этой тренировки пока не привязаны.",
			ProtectContent: true,
		})
		if err != nil {
			return err
		}
		toDelete = append(toDelete, m.MessageID)
	}

	warn, err := b.api.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:         chatID,
		Text:           "<b><i>Тренировка автоматически удалится через 24 часа</i></b>",
		ParseMode:      "HTML",
		ProtectContent: true,
	})
	if err != nil {
		return err
	}
	toDelete = append(toDelete, warn.MessageID)

	text := routine.Text
	if text == "" {
		text = fmt.Sprintf("Описание тренировки %s (%s): скоро добавим 💪", key, month)
	}
	txt, err := b.api.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:         chatID,
		Text:           text,
		ProtectContent: true,
	})
	if err != nil {
		return err
	}
	toDelete = append(toDelete, txt.MessageID)

	if err := b.reply(ctx, chatID, "Можешь вернуться в меню:", kbBack()); err != nil {
		return err
	}

	for _, mid := range toDelete {
		if err := b.scheduler.Schedule(ctx, chatID, mid); err != nil {
			log.Error("failed to schedule message deletion",
				slog.Int64("message_id", mid), sl.Err(err))
		}
	}

	if trial {
		if err := b.gate.MarkTrialDelivered(ctx, userID, string(place)); err != nil {
			log.Error("failed to mark trial delivery", sl.Err(err))
		}
	} else {
		if err := b.gate.MarkDelivered(ctx, userID); err != nil {
			log.Error("failed to mark daily delivery", sl.Err(err))
		}
	}

	if err := b.telemetry.IncrementTrainingsOpened(ctx, userID); err != nil {
		log.Warn("failed to increment trainings counter", sl.Err(err))
	}
	metrics.TrainingsDelivered.Inc()

	log.Info("training delivered",
		slog.String("place", string(place)),
		slog.String("month", month),
		slog.String("key", key),
		slog.Bool("trial", trial))
	return nil
}

// handleMedia отвечает админу file_id присланного вложения, чтобы его
// можно было добавить в каталог. Остальным вложения не нужны.
func (b *Bot) handleMedia(ctx context.Context, msg *telegram.Message) error {
	if !b.isAdmin(msg.From.ID) {
		return b.reply(ctx, msg.Chat.ID, "Выберите пункт меню 👇", kbMain())
	}

	switch {
	case msg.Video != nil:
		return b.reply(ctx, msg.Chat.ID, "Видео получил ✅\nfile_id: "+msg.Video.FileID, nil)
	case msg.Document != nil:
		return b.reply(ctx, msg.Chat.ID, "Документ получил ✅\nfile_id: "+msg.Document.FileID, nil)
	}
	return b.reply(ctx, msg.Chat.ID, "Пришли видео или документ — я дам тебе file_id.", nil)
}
