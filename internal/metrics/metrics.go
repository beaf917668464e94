// Package metrics объявляет счётчики Prometheus, отдаваемые на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesProcessed — обработанные обновления по типам.
	UpdatesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpusbot_updates_processed_total",
		Help: "Processed Telegram updates by type.",
	}, []string{"type"})

	// PaymentsCredited — зачисленные платежи (дубликаты не считаются).
	PaymentsCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpusbot_payments_credited_total",
		Help: "Unique payments credited to subscriptions.",
	})

	// Refunds — попытки рефанда по результату: confirmed, declined, stale.
	Refunds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpusbot_refunds_total",
		Help: "Refund attempts by outcome.",
	}, []string{"outcome"})

	// TrainingsDelivered — доставленные тренировки.
	TrainingsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpusbot_trainings_delivered_total",
		Help: "Training routines delivered to users.",
	})

	// MessagesDeleted — выполненные отложенные удаления по результату.
	MessagesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpusbot_messages_deleted_total",
		Help: "Ephemeral message deletions by outcome.",
	}, []string{"outcome"})
)
