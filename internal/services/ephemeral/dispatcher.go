// Package ephemeral удаляет отправленный пользователям контент по
// истечении срока хранения. Очередь заданий живёт в базе, поэтому
// перезапуск процесса подбирает просроченные задания при первом тике.
package ephemeral

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/metrics"
	"github.com/corpusfit/corpus-bot/internal/models"
)

// DeletionRepository — очередь отложенных удалений в хранилище.
type DeletionRepository interface {
	ScheduleDeletion(ctx context.Context, chatID, messageID int64, fireAt time.Time) (int, error)
	DueDeletions(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledDeletion, error)
	RemoveDeletion(ctx context.Context, id int) error
}

// MessageDeleter — часть клиента Bot API, нужная диспетчеру.
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// Dispatcher планирует и исполняет удаление сообщений.
type Dispatcher struct {
	repo     DeletionRepository
	deleter  MessageDeleter
	ttl      time.Duration
	interval time.Duration
	batch    int
	now      func() time.Time
	log      *slog.Logger
}

// New создаёт Dispatcher с заданным сроком хранения контента и
// периодом опроса очереди.
func New(repo DeletionRepository, deleter MessageDeleter, ttl, interval time.Duration, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		deleter:  deleter,
		ttl:      ttl,
		interval: interval,
		batch:    100,
		now:      time.Now,
		log:      log,
	}
}

// WithClock подменяет источник времени. Используется в тестах.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Schedule ставит сообщение в очередь: оно будет удалено спустя срок
// хранения. Ошибка означает, что задание не записано и сообщение
// останется в чате навсегда, поэтому вызывающий код должен её залогировать.
func (d *Dispatcher) Schedule(ctx context.Context, chatID, messageID int64) error {
	const op = "ephemeral.Schedule"

	fireAt := d.now().UTC().Add(d.ttl)
	if _, err := d.repo.ScheduleDeletion(ctx, chatID, messageID, fireAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Run крутит цикл обработки очереди до отмены контекста. Первый проход
// выполняется сразу, чтобы накопившиеся за простой задания не ждали тика.
func (d *Dispatcher) Run(ctx context.Context) {
	d.sweep(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.sweep(ctx)
		}
	}
}

// sweep забирает созревшие задания и исполняет каждое ровно один раз.
// Задание снимается с очереди независимо от исхода удаления: сообщение
// могло быть уже удалено вручную, и повторять попытку бессмысленно.
func (d *Dispatcher) sweep(ctx context.Context) {
	const op = "ephemeral.sweep"

	due, err := d.repo.DueDeletions(ctx, d.now().UTC(), d.batch)
	if err != nil {
		d.log.Error("failed to fetch due deletions", sl.Err(fmt.Errorf("%s: %w", op, err)))
		return
	}

	for _, job := range due {
		if err := d.deleter.DeleteMessage(ctx, job.ChatID, job.MessageID); err != nil {
			metrics.MessagesDeleted.WithLabelValues("failed").Inc()
			d.log.Warn("failed to delete message",
				slog.Int64("chat_id", job.ChatID),
				slog.Int64("message_id", job.MessageID),
				sl.Err(err))
		} else {
			metrics.MessagesDeleted.WithLabelValues("ok").Inc()
		}

		if err := d.repo.RemoveDeletion(ctx, job.ID); err != nil {
			d.log.Error("failed to remove deletion job",
				slog.Int("job_id", job.ID), sl.Err(err))
		}
	}
}
