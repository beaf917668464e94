// Package entitlement реализует учёт подписочных окон: выдачу, продление,
// отзыв и проверку активности. Единственный владелец таблицы subscriptions.
package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corpusfit/corpus-bot/internal/lib/keylock"
	"github.com/corpusfit/corpus-bot/internal/models"
)

// SubscriptionRepository определяет методы хранилища подписок.
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error)
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
	DeleteSubscription(ctx context.Context, userID int64) (int, error)
	ListSubscriptionsWithLastPayment(ctx context.Context) ([]*models.SubscriptionReport, error)
}

// Service реализует бизнес-логику подписочных окон.
// Мутации одного пользователя сериализуются через keylock: два
// одновременных продления не должны терять дни друг друга.
type Service struct {
	repo       SubscriptionRepository
	locks      *keylock.KeyLock
	privileged map[int64]struct{}
	now        func() time.Time
	log        *slog.Logger
}

// New создаёт Service. adminIDs — привилегированный набор: такие
// пользователи всегда считаются с активной подпиской.
func New(repo SubscriptionRepository, adminIDs []int64, log *slog.Logger) *Service {
	privileged := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		privileged[id] = struct{}{}
	}
	return &Service{
		repo:       repo,
		locks:      keylock.New(),
		privileged: privileged,
		now:        time.Now,
		log:        log,
	}
}

// WithClock подменяет источник времени. Используется в тестах.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today возвращает сегодняшнюю календарную дату (UTC, без времени).
func (s *Service) Today() time.Time {
	return DateOnly(s.now().UTC())
}

// DateOnly обрезает время, оставляя календарную дату в UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPrivileged сообщает, входит ли пользователь в привилегированный набор.
func (s *Service) IsPrivileged(userID int64) bool {
	_, ok := s.privileged[userID]
	return ok
}

// Load возвращает подписку пользователя или nil, если её нет.
func (s *Service) Load(ctx context.Context, userID int64) (*models.Subscription, error) {
	return s.repo.GetSubscription(ctx, userID)
}

// Extend выдаёт или продлевает подписку на durationDays дней.
// Если текущее окно ещё действует, новые дни добавляются к его концу
// (раннее продление не сгорает); иначе окно начинается сегодня.
func (s *Service) Extend(ctx context.Context, userID int64, durationDays int) (*models.Subscription, error) {
	const op = "entitlement.Extend"

	if durationDays <= 0 {
		return nil, fmt.Errorf("%s: duration must be positive, got %d", op, durationDays)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	today := s.Today()
	var next models.Subscription
	if current != nil && current.ActiveOn(today) {
		next = models.Subscription{
			UserID:    userID,
			StartDate: current.StartDate,
			EndDate:   current.EndDate.AddDate(0, 0, durationDays),
		}
	} else {
		next = models.Subscription{
			UserID:    userID,
			StartDate: today,
			EndDate:   today.AddDate(0, 0, durationDays),
		}
	}

	if err := s.repo.UpsertSubscription(ctx, next); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription extended",
		slog.Int64("user_id", userID),
		slog.Int("days", durationDays),
		slog.Time("end_date", next.EndDate))
	return &next, nil
}

// Revoke удаляет подписку пользователя. Эффект виден следующей же
// проверке HasActive: кэша активности нет.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	const op = "entitlement.Revoke"

	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.repo.DeleteSubscription(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription revoked", slog.Int64("user_id", userID))
	return nil
}

// HasActive сообщает, действует ли подписка пользователя сегодня.
// Привилегированные пользователи активны всегда, независимо от хранилища.
func (s *Service) HasActive(ctx context.Context, userID int64) (bool, error) {
	const op = "entitlement.HasActive"

	if s.IsPrivileged(userID) {
		return true, nil
	}
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if sub == nil {
		return false, nil
	}
	return sub.ActiveOn(s.Today()), nil
}

// Report возвращает все подписки с последними платежами для админского отчёта.
func (s *Service) Report(ctx context.Context) ([]*models.SubscriptionReport, error) {
	return s.repo.ListSubscriptionsWithLastPayment(ctx)
}
