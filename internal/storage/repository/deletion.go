package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/corpusfit/corpus-bot/internal/models"
)

// ScheduleDeletion ставит сообщение в очередь отложенного удаления.
// Очередь хранится в базе, поэтому переживает перезапуск процесса.
func (s *Storage) ScheduleDeletion(ctx context.Context, chatID, messageID int64, fireAt time.Time) (int, error) {
	const op = "storage.ScheduleDeletion"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO scheduled_deletions (chat_id, message_id, fire_at)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, chatID, messageID, fireAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// DueDeletions возвращает задания, срок которых наступил к моменту now.
func (s *Storage) DueDeletions(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledDeletion, error) {
	const op = "storage.DueDeletions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, chat_id, message_id, fire_at
			  FROM scheduled_deletions
			  WHERE fire_at <= $1
			  ORDER BY fire_at
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ScheduledDeletion
	for rows.Next() {
		var item models.ScheduledDeletion
		if err := rows.Scan(&item.ID, &item.ChatID, &item.MessageID, &item.FireAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveDeletion убирает задание из очереди после единственной попытки выполнения.
func (s *Storage) RemoveDeletion(ctx context.Context, id int) error {
	const op = "storage.RemoveDeletion"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM scheduled_deletions WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
