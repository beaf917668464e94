package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/corpusfit/corpus-bot/internal/content"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

const termsText = "Условия использования и оплаты:\n\n" +
	"- Подписка даёт доступ ко всем тренировкам бота на срок выбранного тарифа.\n" +
	"- Оплата выполняется в Telegram Stars внутри приложения.\n" +
	"- Возврат средств возможен в индивидуальном порядке по запросу, возврат возможен в течении 14 дней после покупки подписки.\n" +
	"- Покупая подписку, вы подтверждаете, что ознакомились с этими условиями.\n\n" +
	"Важно: поддержка Telegram и @BotSupport не помогают по вопросам платежей за этот бот – " +
	"по всем вопросам обращайтесь только к автору бота."

const paySupportText = "Если возникли вопросы по оплате или доступу к тренировкам:\n\n" +
	"1) Напишите автору бота.\n" +
	"2) В сообщении укажите ваш @username, дату платежа и скриншот чека.\n\n" +
	"Важно: поддержка Telegram и @BotSupport не помогают по вопросам платежей за этот бот."

const needSubscriptionText = "Тренировки доступны только по активной подписке 🔒\n" +
	"Сначала оформите подписку."

// sendStart показывает главное меню и сбрасывает навигацию.
func (b *Bot) sendStart(ctx context.Context, msg *telegram.Message) error {
	b.resetSession(ctx, msg.From.ID)
	return b.reply(ctx, msg.Chat.ID,
		"Добро пожаловать,\nCORPUS — платформа с продуманной системой тренировок, "+
			"которая делает самостоятельные занятия безопасными и эффективными. "+
			"Выберите нужный пункт меню 👇",
		kbMain())
}

func isMenuCommand(text string) bool {
	switch strings.ToLower(text) {
	case "меню", "вернуться в меню", "/меню", "/menu", "/вернуться в меню":
		return true
	}
	return false
}

func (b *Bot) handleText(ctx context.Context, log *slog.Logger, msg *telegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if isMenuCommand(text) {
		return b.sendStart(ctx, msg)
	}

	switch text {
	case btnSubscription:
		return b.handleSubscriptionButton(ctx, msg)
	case btnSubscribe:
		return b.reply(ctx, chatID, "Выберите тариф 👇", b.kbPlans())
	case btnRules:
		return b.reply(ctx, chatID, termsText, kbBack())
	case btnNutrition:
		return b.handleNutritionButton(ctx, msg)
	case btnTraining:
		return b.handleTrainingButton(ctx, msg)
	}

	// выбор тарифа по названию
	for i := range b.plans {
		if text == b.plans[i].Title {
			return b.sendPlanInvoice(ctx, log, msg, &b.plans[i])
		}
	}

	// выбор места
	if place, ok := content.PlaceFromButton(text); ok {
		s := b.loadSession(ctx, userID)
		s.Place = string(place)
		b.saveSession(ctx, userID, s)
		return b.reply(ctx, chatID, "Выберите месяц:", kbMonth())
	}

	// выбор блока месяцев
	if monthKey, ok := strings.CutSuffix(text, " месяц"); ok && content.IsMonthBlock(monthKey) {
		s := b.loadSession(ctx, userID)
		s.Month = monthKey
		b.saveSession(ctx, userID, s)

		kb := kbTrainingGroups()
		if monthKey == "1" {
			kb = kbTrainingNums()
		}
		return b.reply(ctx, chatID, content.MonthDescription(monthKey), kb)
	}

	// выбор тренировки по номеру (первый месяц)
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= 12 {
		s := b.loadSession(ctx, userID)
		if s.Place == "" || s.Month == "" {
			return b.reply(ctx, chatID, "Сначала выбери место и месяц 💡", kbMain())
		}
		if s.Month != "1" {
			return b.reply(ctx, chatID,
				"В этом месяце тренировки сгруппированы по направлению: Ягодицы / Верх тела / Ноги 👇",
				kbTrainingGroups())
		}
		return b.sendTraining(ctx, log, msg, content.Place(s.Place), s.Month, text)
	}

	// выбор тренировки по направлению
	if content.IsGroupKey(text) {
		s := b.loadSession(ctx, userID)
		if s.Place == "" || s.Month == "" {
			return b.reply(ctx, chatID, "Сначала выбери место и месяц 💡", kbMain())
		}
		if s.Month == "1" {
			return b.reply(ctx, chatID, "В 1 месяце доступны только тренировки 1–12 👇", kbTrainingNums())
		}
		return b.sendTraining(ctx, log, msg, content.Place(s.Place), s.Month, text)
	}

	return b.reply(ctx, chatID, "Выберите пункт меню 👇", kbMain())
}

func (b *Bot) handleSubscriptionButton(ctx context.Context, msg *telegram.Message) error {
	hasSub, err := b.ents.HasActive(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if !hasSub {
		return b.reply(ctx, msg.Chat.ID,
			"Подписка даёт доступ ко всем тренировкам бота.\n\n"+
				"Чтобы оформить оплату через Telegram Stars, нажмите «Оформить подписку».",
			kbSubscribe())
	}

	sub, err := b.ents.Load(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	text := "У Вас уже есть активная подписка ✅\nМожете открывать любые тренировки."
	if sub != nil {
		text = "У Вас уже есть активная подписка ✅\n\n" +
			"Начало: " + formatDate(sub.StartDate) + "\n" +
			"Окончание: " + formatDate(sub.EndDate) + "\n\n" +
			"Можете открывать любые тренировки."
	}
	return b.reply(ctx, msg.Chat.ID, text, kbMain())
}

func (b *Bot) handleNutritionButton(ctx context.Context, msg *telegram.Message) error {
	hasSub, err := b.ents.HasActive(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if !hasSub {
		return b.reply(ctx, msg.Chat.ID,
			"Раздел «Питание» доступен только по активной подписке 🔒\n\n"+
				"Чтобы получить доступ, сначала оформите подписку.",
			kbSubscribe())
	}
	return b.reply(ctx, msg.Chat.ID,
		"Подробнее о питании Вы можете посмотреть в данной группе - ", kbBack())
}

func (b *Bot) handleTrainingButton(ctx context.Context, msg *telegram.Message) error {
	hasSub, err := b.ents.HasActive(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if !hasSub {
		return b.reply(ctx, msg.Chat.ID,
			"Без подписки доступна одна пробная тренировка для каждого места занятий 🎁\n\n"+
				"Где будете тренироваться?",
			kbPlace())
	}
	return b.reply(ctx, msg.Chat.ID, "Где будете тренироваться?", kbPlace())
}
