// Package reconciler оркестрирует денежные потоки: выдачу инвойса,
// подтверждение pre-checkout, зачисление платежа и админский рефанд.
// Деньги и подписка сводятся здесь; ни один шаг не должен
// ни продублировать, ни молча потерять право доступа.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/metrics"
	"github.com/corpusfit/corpus-bot/internal/models"
)

var (
	// ErrAlreadySubscribed — новый инвойс не выдаётся при активной подписке.
	ErrAlreadySubscribed = errors.New("subscription already active")
	// ErrUnknownPlan — payload инвойса не соответствует ни одному плану.
	ErrUnknownPlan = errors.New("unknown plan payload")
	// ErrRefundDeclined — шлюз не подтвердил рефанд; локальное состояние не тронуто.
	ErrRefundDeclined = errors.New("refund not confirmed by gateway")
)

// StaleEntitlementError — рефанд прошёл, но локальный отзыв подписки
// не удался. Требует ручной сверки оператором, поэтому ошибка отдельная
// и несёт все данные для неё.
type StaleEntitlementError struct {
	UserID   int64
	ChargeID string
	Err      error
}

func (e *StaleEntitlementError) Error() string {
	return fmt.Sprintf("refund succeeded but local revoke failed for user %d (charge %s): %v",
		e.UserID, e.ChargeID, e.Err)
}

func (e *StaleEntitlementError) Unwrap() error { return e.Err }

// Entitlements — нужная реконсилятору часть сервиса подписок.
type Entitlements interface {
	Load(ctx context.Context, userID int64) (*models.Subscription, error)
	Extend(ctx context.Context, userID int64, durationDays int) (*models.Subscription, error)
	Revoke(ctx context.Context, userID int64) error
	HasActive(ctx context.Context, userID int64) (bool, error)
}

// PaymentRepository — журнал платежей.
type PaymentRepository interface {
	InsertPayment(ctx context.Context, userID int64, chargeID string, amount int64, currency string, paidAt time.Time) (bool, error)
	LastPayment(ctx context.Context, userID int64) (*models.Payment, error)
}

// RefundGateway — внешний шлюз рефандов (Bot API refundStarPayment).
type RefundGateway interface {
	RefundStarPayment(ctx context.Context, userID int64, chargeID string) (bool, error)
}

// PlanCatalog — каталог тарифных планов из конфигурации.
type PlanCatalog interface {
	PlanByPayload(payload string) (*models.Plan, bool)
}

// Service — ядро платёжной сверки.
type Service struct {
	ents    Entitlements
	ledger  PaymentRepository
	gateway RefundGateway
	plans   PlanCatalog
	now     func() time.Time
	log     *slog.Logger
}

// New создаёт Service.
func New(ents Entitlements, ledger PaymentRepository, gateway RefundGateway, plans PlanCatalog, log *slog.Logger) *Service {
	return &Service{
		ents:    ents,
		ledger:  ledger,
		gateway: gateway,
		plans:   plans,
		now:     time.Now,
		log:     log,
	}
}

// WithClock подменяет источник времени. Используется в тестах.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RequestInvoice — первый шаг покупки. При активной подписке инвойс
// не выдаётся: вместо него возвращается ErrAlreadySubscribed и текущее
// окно, чтобы пользователь не оплатил продление по ошибке.
func (s *Service) RequestInvoice(ctx context.Context, userID int64, plan *models.Plan) (*models.Subscription, error) {
	const op = "reconciler.RequestInvoice"

	active, err := s.ents.HasActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if active {
		sub, err := s.ents.Load(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return sub, ErrAlreadySubscribed
	}
	s.log.Info("invoice requested",
		slog.Int64("user_id", userID), slog.String("plan", plan.Key))
	return nil, nil
}

// ValidatePreCheckout — синхронное подтверждение перед списанием.
// Одобряется только payload известного плана; состояние не меняется.
func (s *Service) ValidatePreCheckout(payload string) error {
	if _, ok := s.plans.PlanByPayload(payload); !ok {
		return ErrUnknownPlan
	}
	return nil
}

// Credit зачисляет подтверждённый платёж: пишет журнал и продлевает
// подписку на срок плана. Идемпотентен по chargeID: повторное
// подтверждение того же платежа — не ошибка и не второе продление.
// Возвращает окно подписки и признак того, что зачисление произошло.
func (s *Service) Credit(ctx context.Context, userID int64, chargeID, payload string, amount int64, currency string) (*models.Subscription, bool, error) {
	const op = "reconciler.Credit"

	plan, ok := s.plans.PlanByPayload(payload)
	if !ok || currency != "XTR" {
		return nil, false, ErrUnknownPlan
	}

	inserted, err := s.ledger.InsertPayment(ctx, userID, chargeID, amount, currency, s.now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !inserted {
		// Дубликат подтверждения: платёж уже зачислен, продлевать нечего.
		s.log.Warn("duplicate payment confirmation ignored",
			slog.Int64("user_id", userID), slog.String("charge_id", chargeID))
		sub, err := s.ents.Load(ctx, userID)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		return sub, false, nil
	}

	sub, err := s.ents.Extend(ctx, userID, plan.DurationDays)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	metrics.PaymentsCredited.Inc()
	s.log.Info("payment credited",
		slog.Int64("user_id", userID),
		slog.String("charge_id", chargeID),
		slog.String("plan", plan.Key),
		slog.Time("end_date", sub.EndDate))
	return sub, true, nil
}

// Refund выполняет админский рефанд: сперва подтверждение шлюза, и только
// потом отзыв подписки. Неподтверждённый рефанд ничего не меняет. Если
// отзыв после подтверждения не удался, возвращается StaleEntitlementError.
func (s *Service) Refund(ctx context.Context, userID int64, chargeID string) error {
	const op = "reconciler.Refund"

	confirmed, err := s.gateway.RefundStarPayment(ctx, userID, chargeID)
	if err != nil {
		metrics.Refunds.WithLabelValues("declined").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	if !confirmed {
		metrics.Refunds.WithLabelValues("declined").Inc()
		return ErrRefundDeclined
	}

	if err := s.ents.Revoke(ctx, userID); err != nil {
		metrics.Refunds.WithLabelValues("stale").Inc()
		s.log.Error("refund confirmed but revoke failed",
			slog.Int64("user_id", userID), slog.String("charge_id", chargeID), sl.Err(err))
		return &StaleEntitlementError{UserID: userID, ChargeID: chargeID, Err: err}
	}

	metrics.Refunds.WithLabelValues("confirmed").Inc()
	s.log.Info("refund completed",
		slog.Int64("user_id", userID), slog.String("charge_id", chargeID))
	return nil
}

// Grant — ручная выдача подписки администратором. Журнал платежей
// не трогается: отсутствие строки в payments и отличает грант от оплаты.
func (s *Service) Grant(ctx context.Context, userID int64, durationDays int) (*models.Subscription, error) {
	const op = "reconciler.Grant"

	sub, err := s.ents.Extend(ctx, userID, durationDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("manual grant",
		slog.Int64("user_id", userID), slog.Int("days", durationDays))
	return sub, nil
}

// RevokeManual — ручной отзыв подписки администратором.
func (s *Service) RevokeManual(ctx context.Context, userID int64) error {
	const op = "reconciler.RevokeManual"

	if err := s.ents.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("manual revoke", slog.Int64("user_id", userID))
	return nil
}

// LastPayment возвращает последний платёж пользователя для админских ответов.
func (s *Service) LastPayment(ctx context.Context, userID int64) (*models.Payment, error) {
	return s.ledger.LastPayment(ctx, userID)
}
