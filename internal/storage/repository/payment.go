package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/corpusfit/corpus-bot/internal/models"
)

// InsertPayment добавляет строку в журнал платежей. charge_id уникален:
// повторная вставка того же платежа не создаёт строку и возвращает false.
// Этот флаг и есть проверка идемпотентности зачисления.
func (s *Storage) InsertPayment(ctx context.Context, userID int64, chargeID string, amount int64, currency string, paidAt time.Time) (bool, error) {
	const op = "storage.InsertPayment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_id, charge_id, amount, currency, paid_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (charge_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, userID, chargeID, amount, currency, paidAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// LastPayment возвращает последний по порядку вставки платёж пользователя
// или nil, если платежей не было.
func (s *Storage) LastPayment(ctx context.Context, userID int64) (*models.Payment, error) {
	const op = "storage.LastPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, charge_id, amount, currency, paid_at
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY id DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	var result models.Payment
	if err := row.Scan(&result.ID, &result.UserID, &result.ChargeID,
		&result.Amount, &result.Currency, &result.PaidAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
