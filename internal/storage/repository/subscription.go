package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/corpusfit/corpus-bot/internal/models"
)

// GetSubscription возвращает подписку пользователя или nil, если её нет.
func (s *Storage) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, start_date, end_date
			  FROM subscriptions WHERE user_id = $1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	var result models.Subscription
	if err := row.Scan(&result.UserID, &result.StartDate, &result.EndDate); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpsertSubscription сохраняет подписку пользователя, перезаписывая
// существующее окно. Одна строка на пользователя.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, start_date, end_date)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id) DO UPDATE SET
			      start_date = EXCLUDED.start_date,
			      end_date   = EXCLUDED.end_date`
	if _, err := s.DB.ExecContext(ctx, query, sub.UserID, sub.StartDate, sub.EndDate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteSubscription удаляет подписку пользователя и возвращает
// количество удалённых строк.
func (s *Storage) DeleteSubscription(ctx context.Context, userID int64) (int, error) {
	const op = "storage.DeleteSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE user_id = $1`
	result, err := s.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptionsWithLastPayment возвращает все подписки по порядку
// user_id вместе с последним платежом каждого пользователя, если он был.
// Используется админским отчётом /subs.
func (s *Storage) ListSubscriptionsWithLastPayment(ctx context.Context) ([]*models.SubscriptionReport, error) {
	const op = "storage.ListSubscriptionsWithLastPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.user_id, s.start_date, s.end_date,
				     p.id, p.charge_id, p.amount, p.currency, p.paid_at
			  FROM subscriptions s
			  LEFT JOIN payments p ON p.id = (
			      SELECT MAX(id) FROM payments WHERE user_id = s.user_id
			  )
			  ORDER BY s.user_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionReport
	for rows.Next() {
		var item models.SubscriptionReport
		var payID sql.NullInt64
		var chargeID, currency sql.NullString
		var amount sql.NullInt64
		var paidAt sql.NullTime
		if err := rows.Scan(&item.Subscription.UserID, &item.Subscription.StartDate,
			&item.Subscription.EndDate, &payID, &chargeID, &amount, &currency, &paidAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if payID.Valid {
			item.LastPayment = &models.Payment{
				ID:       int(payID.Int64),
				UserID:   item.Subscription.UserID,
				ChargeID: chargeID.String,
				Amount:   amount.Int64,
				Currency: currency.String,
				PaidAt:   paidAt.Time,
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
