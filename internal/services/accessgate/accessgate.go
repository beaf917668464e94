// Package accessgate решает, можно ли пользователю открыть тренировку:
// требует активную подписку и ограничивает просмотр одной тренировкой
// в календарный день. Администраторы и пробные просмотры не ограничиваются.
package accessgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Сентинельные ошибки гейта: по ним роутер выбирает текст ответа.
var (
	// ErrNoSubscription — у пользователя нет активной подписки.
	ErrNoSubscription = errors.New("no active subscription")
	// ErrDailyLimit — тренировка на сегодня уже просмотрена.
	ErrDailyLimit = errors.New("daily training already viewed")
	// ErrTrialUsed — пробный просмотр для этого места уже использован.
	ErrTrialUsed = errors.New("trial view already used")
)

// Entitlements — нужная гейту часть сервиса подписок.
type Entitlements interface {
	HasActive(ctx context.Context, userID int64) (bool, error)
	IsPrivileged(userID int64) bool
	Today() time.Time
}

// MarkStore хранит отметку «последний просмотр» (redis). Отметка
// сравнивается по значению даты, TTL служит только для уборки ключей.
type MarkStore interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// TrialRepository хранит долговременные отметки пробных просмотров.
type TrialRepository interface {
	HasTrialView(ctx context.Context, userID int64, place string) (bool, error)
	MarkTrialView(ctx context.Context, userID int64, place string) error
}

// Service — гейт доступа к тренировкам.
type Service struct {
	ents   Entitlements
	marks  MarkStore
	trials TrialRepository
	log    *slog.Logger
}

// New создаёт Service.
func New(ents Entitlements, marks MarkStore, trials TrialRepository, log *slog.Logger) *Service {
	return &Service{
		ents:   ents,
		marks:  marks,
		trials: trials,
		log:    log,
	}
}

func markKey(userID int64) string {
	return fmt.Sprintf("lastview:%d", userID)
}

// Allow проверяет, можно ли пользователю открыть тренировку сейчас.
// Возвращает ErrNoSubscription или ErrDailyLimit; nil означает «можно».
// Состояние не меняет: отметку ставит MarkDelivered после успешной доставки.
func (s *Service) Allow(ctx context.Context, userID int64) error {
	const op = "accessgate.Allow"

	active, err := s.ents.HasActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !active {
		return ErrNoSubscription
	}
	if s.ents.IsPrivileged(userID) {
		return nil
	}

	var lastView string
	found, err := s.marks.Get(ctx, markKey(userID), &lastView)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found && lastView == s.ents.Today().Format(time.DateOnly) {
		return ErrDailyLimit
	}
	return nil
}

// MarkDelivered фиксирует сегодняшний просмотр. Для привилегированных
// пользователей отметка не ставится: их лимит не ограничен.
func (s *Service) MarkDelivered(ctx context.Context, userID int64) error {
	const op = "accessgate.MarkDelivered"

	if s.ents.IsPrivileged(userID) {
		return nil
	}
	today := s.ents.Today().Format(time.DateOnly)
	// 48 часов хватает с запасом: сравнение всё равно идёт по дате.
	if err := s.marks.Set(ctx, markKey(userID), today, 48*time.Hour); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("daily view marked", slog.Int64("user_id", userID), slog.String("date", today))
	return nil
}

// AllowTrial разрешает один пробный просмотр на место тренировок
// пользователю без подписки. Пробный просмотр не трогает дневную отметку.
func (s *Service) AllowTrial(ctx context.Context, userID int64, place string) error {
	const op = "accessgate.AllowTrial"

	used, err := s.trials.HasTrialView(ctx, userID, place)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if used {
		return ErrTrialUsed
	}
	return nil
}

// MarkTrialDelivered фиксирует использование пробного просмотра.
func (s *Service) MarkTrialDelivered(ctx context.Context, userID int64, place string) error {
	const op = "accessgate.MarkTrialDelivered"

	if err := s.trials.MarkTrialView(ctx, userID, place); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trial view marked", slog.Int64("user_id", userID), slog.String("place", place))
	return nil
}
