package bot

import (
	"context"
	"fmt"
	"time"
)

// session — состояние навигации по меню: выбранные место и блок месяцев.
type session struct {
	Place string `json:"place,omitempty"`
	Month string `json:"month,omitempty"`
}

const sessionTTL = 24 * time.Hour

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

func (b *Bot) loadSession(ctx context.Context, userID int64) session {
	var s session
	found, err := b.sessions.Get(ctx, sessionKey(userID), &s)
	if err != nil || !found {
		return session{}
	}
	return s
}

func (b *Bot) saveSession(ctx context.Context, userID int64, s session) {
	if err := b.sessions.Set(ctx, sessionKey(userID), s, sessionTTL); err != nil {
		b.log.Warn("failed to save session", "user_id", userID)
	}
}

// resetSession очищает навигацию. Отметка дневного просмотра живёт
// отдельно и сбросом меню не затрагивается.
func (b *Bot) resetSession(ctx context.Context, userID int64) {
	_ = b.sessions.Invalidate(ctx, sessionKey(userID))
}
