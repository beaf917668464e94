package repository

import (
	"context"
	"fmt"

	"github.com/corpusfit/corpus-bot/internal/models"
)

// TouchUser регистрирует активность пользователя: создаёт строку
// телеметрии при первом появлении и обновляет last_seen и username.
func (s *Storage) TouchUser(ctx context.Context, userID int64, username string) error {
	const op = "storage.TouchUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (user_id, username)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id) DO UPDATE SET
			      username  = EXCLUDED.username,
			      last_seen = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, userID, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementStarts увеличивает счётчик команд /start пользователя.
func (s *Storage) IncrementStarts(ctx context.Context, userID int64) error {
	const op = "storage.IncrementStarts"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET starts_count = starts_count + 1 WHERE user_id = $1`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementTrainingsOpened увеличивает счётчик открытых тренировок.
func (s *Storage) IncrementTrainingsOpened(ctx context.Context, userID int64) error {
	const op = "storage.IncrementTrainingsOpened"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET trainings_opened = trainings_opened + 1 WHERE user_id = $1`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUserStats возвращает телеметрию всех пользователей по порядку user_id.
func (s *Storage) ListUserStats(ctx context.Context) ([]*models.UserStats, error) {
	const op = "storage.ListUserStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, username, first_seen, last_seen, starts_count, trainings_opened
			  FROM users
			  ORDER BY user_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserStats
	for rows.Next() {
		var item models.UserStats
		if err := rows.Scan(&item.UserID, &item.Username, &item.FirstSeen,
			&item.LastSeen, &item.StartsCount, &item.TrainingsOpened); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// HasTrialView сообщает, использовал ли пользователь пробный просмотр
// для данного места тренировок.
func (s *Storage) HasTrialView(ctx context.Context, userID int64, place string) (bool, error) {
	const op = "storage.HasTrialView"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM trial_views WHERE user_id = $1 AND place = $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userID, place).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// MarkTrialView фиксирует использование пробного просмотра. Повторная
// отметка того же места не является ошибкой.
func (s *Storage) MarkTrialView(ctx context.Context, userID int64, place string) error {
	const op = "storage.MarkTrialView"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trial_views (user_id, place)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id, place) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID, place); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
