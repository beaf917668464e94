// Package bot реализует диалог с пользователем: главное меню, выдачу
// тренировок, покупку подписки за Stars и админские команды.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/metrics"
	"github.com/corpusfit/corpus-bot/internal/models"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

// Transport — часть клиента Bot API, которой пользуются обработчики.
type Transport interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
	SendInvoice(ctx context.Context, req telegram.SendInvoiceRequest) (*telegram.Message, error)
	AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error
	SendMediaGroup(ctx context.Context, chatID int64, media []telegram.InputMediaVideo, protectContent bool) ([]telegram.Message, error)
}

// Entitlements — сервис подписок в объёме, нужном обработчикам.
type Entitlements interface {
	Load(ctx context.Context, userID int64) (*models.Subscription, error)
	HasActive(ctx context.Context, userID int64) (bool, error)
	IsPrivileged(userID int64) bool
	Report(ctx context.Context) ([]*models.SubscriptionReport, error)
}

// Reconciler — платёжная сверка: инвойсы, зачисление, рефанды, ручные выдачи.
type Reconciler interface {
	RequestInvoice(ctx context.Context, userID int64, plan *models.Plan) (*models.Subscription, error)
	ValidatePreCheckout(payload string) error
	Credit(ctx context.Context, userID int64, chargeID, payload string, amount int64, currency string) (*models.Subscription, bool, error)
	Refund(ctx context.Context, userID int64, chargeID string) error
	Grant(ctx context.Context, userID int64, durationDays int) (*models.Subscription, error)
	RevokeManual(ctx context.Context, userID int64) error
}

// Gate — контроль доступа к тренировкам.
type Gate interface {
	Allow(ctx context.Context, userID int64) error
	MarkDelivered(ctx context.Context, userID int64) error
	AllowTrial(ctx context.Context, userID int64, place string) error
	MarkTrialDelivered(ctx context.Context, userID int64, place string) error
}

// Scheduler ставит отправленные сообщения в очередь отложенного удаления.
type Scheduler interface {
	Schedule(ctx context.Context, chatID, messageID int64) error
}

// SessionStore хранит состояние меню пользователя между сообщениями.
type SessionStore interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Telemetry — счётчики использования (таблица users).
type Telemetry interface {
	TouchUser(ctx context.Context, userID int64, username string) error
	IncrementStarts(ctx context.Context, userID int64) error
	IncrementTrainingsOpened(ctx context.Context, userID int64) error
	ListUserStats(ctx context.Context) ([]*models.UserStats, error)
}

// Deps — зависимости бота.
type Deps struct {
	Transport  Transport
	Ents       Entitlements
	Reconciler Reconciler
	Gate       Gate
	Scheduler  Scheduler
	Sessions   SessionStore
	Telemetry  Telemetry
	Plans      []models.Plan
	AdminIDs   []int64
	Restart    func()
	Logger     *slog.Logger
}

// Bot маршрутизирует обновления Bot API по обработчикам.
type Bot struct {
	api       Transport
	ents      Entitlements
	recon     Reconciler
	gate      Gate
	scheduler Scheduler
	sessions  SessionStore
	telemetry Telemetry
	plans     []models.Plan
	admins    map[int64]struct{}
	restart   func()
	log       *slog.Logger
}

// New создаёт Bot.
func New(deps Deps) *Bot {
	admins := make(map[int64]struct{}, len(deps.AdminIDs))
	for _, id := range deps.AdminIDs {
		admins[id] = struct{}{}
	}
	restart := deps.Restart
	if restart == nil {
		restart = func() {}
	}
	return &Bot{
		api:       deps.Transport,
		ents:      deps.Ents,
		recon:     deps.Reconciler,
		gate:      deps.Gate,
		scheduler: deps.Scheduler,
		sessions:  deps.Sessions,
		telemetry: deps.Telemetry,
		plans:     deps.Plans,
		admins:    admins,
		restart:   restart,
		log:       deps.Logger,
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.admins[userID]
	return ok
}

// HandleUpdate разбирает одно обновление и передаёт его обработчику.
// Ошибки обработчиков логируются и не прерывают цикл получения обновлений.
func (b *Bot) HandleUpdate(ctx context.Context, upd telegram.Update) {
	log := b.log.With(slog.String("trace_id", uuid.NewString()))

	switch {
	case upd.PreCheckoutQuery != nil:
		metrics.UpdatesProcessed.WithLabelValues("pre_checkout").Inc()
		if err := b.handlePreCheckout(ctx, log, upd.PreCheckoutQuery); err != nil {
			log.Error("pre-checkout handling failed", sl.Err(err))
		}
	case upd.Message != nil:
		b.handleMessage(ctx, log, upd.Message)
	default:
		metrics.UpdatesProcessed.WithLabelValues("unknown").Inc()
	}
}

func (b *Bot) handleMessage(ctx context.Context, log *slog.Logger, msg *telegram.Message) {
	if msg.From == nil {
		return
	}
	log = log.With(slog.Int64("user_id", msg.From.ID))

	if err := b.telemetry.TouchUser(ctx, msg.From.ID, msg.From.Username); err != nil {
		log.Warn("failed to touch user", sl.Err(err))
	}

	var err error
	switch {
	case msg.SuccessfulPayment != nil:
		metrics.UpdatesProcessed.WithLabelValues("payment").Inc()
		err = b.handleSuccessfulPayment(ctx, log, msg)
	case msg.Video != nil || msg.Document != nil:
		metrics.UpdatesProcessed.WithLabelValues("media").Inc()
		err = b.handleMedia(ctx, msg)
	case strings.HasPrefix(msg.Text, "/"):
		metrics.UpdatesProcessed.WithLabelValues("command").Inc()
		err = b.handleCommand(ctx, log, msg)
	case msg.Text != "":
		metrics.UpdatesProcessed.WithLabelValues("text").Inc()
		err = b.handleText(ctx, log, msg)
	default:
		metrics.UpdatesProcessed.WithLabelValues("unknown").Inc()
	}
	if err != nil {
		log.Error("update handling failed", sl.Err(err))
	}
}

// reply — короткая форма отправки текста с защитой от пересылки.
func (b *Bot) reply(ctx context.Context, chatID int64, text string, kb *telegram.ReplyKeyboardMarkup) error {
	_, err := b.api.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:         chatID,
		Text:           text,
		ReplyMarkup:    kb,
		ProtectContent: true,
	})
	return err
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
