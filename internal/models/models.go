// Package models содержит доменные структуры бота: подписку пользователя,
// запись о платеже, тарифный план и телеметрию использования.
package models

import "time"

// Subscription — окно доступа пользователя к тренировкам.
// Даты календарные (UTC, без времени); EndDate всегда >= StartDate.
type Subscription struct {
	UserID    int64
	StartDate time.Time
	EndDate   time.Time
}

// ActiveOn сообщает, действует ли подписка в день day.
func (s *Subscription) ActiveOn(day time.Time) bool {
	return !s.EndDate.Before(day)
}

// Payment — строка журнала платежей. Записи только добавляются и никогда
// не изменяются; ChargeID уникален и служит ключом идемпотентности.
type Payment struct {
	ID       int
	UserID   int64
	ChargeID string
	Amount   int64 // сумма в минимальных единицах валюты (для XTR — звёзды)
	Currency string
	PaidAt   time.Time
}

// SubscriptionReport — строка админского отчёта /subs:
// подписка плюс последний платёж пользователя, если он был.
type SubscriptionReport struct {
	Subscription Subscription
	LastPayment  *Payment
}

// Plan — тарифный план подписки. Payload — непрозрачная строка инвойса,
// по ней маршрутизируются pre-checkout и зачисление.
type Plan struct {
	Key          string `yaml:"key" validate:"required"`
	Title        string `yaml:"title" validate:"required"`
	Payload      string `yaml:"payload" validate:"required"`
	PriceStars   int    `yaml:"price_stars" validate:"required,gt=0"`
	DurationDays int    `yaml:"duration_days" validate:"required,gt=0"`
}

// UserStats — телеметрия использования (таблица users).
// Не участвует в проверке прав доступа.
type UserStats struct {
	UserID          int64
	Username        string
	FirstSeen       time.Time
	LastSeen        time.Time
	StartsCount     int
	TrainingsOpened int
}

// ScheduledDeletion — отложенное удаление отправленного сообщения.
type ScheduledDeletion struct {
	ID        int
	ChatID    int64
	MessageID int64
	FireAt    time.Time
}
