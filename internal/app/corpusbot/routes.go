package corpusbot

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/storage/repository"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

// routes собирает служебный HTTP-роутер: health, metrics и, при
// соответствующей настройке, приём обновлений по webhook.
func (a *App) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/health", a.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	if a.webhookPath != "" {
		r.Post(a.webhookPath, a.handleWebhook)
	}

	return r
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := repository.CheckDatabaseReady(a.db); err != nil {
		a.logger.Error("health check failed", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "unavailable"})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleWebhook принимает обновление Bot API. Ответ уходит сразу:
// Telegram повторяет доставку при таймауте, а обработка сообщения
// может занять заметное время.
func (a *App) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var upd telegram.Update
	if err := render.DecodeJSON(r.Body, &upd); err != nil {
		a.logger.Warn("malformed webhook update", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"status": "bad request"})
		return
	}

	go a.bot.HandleUpdate(context.WithoutCancel(r.Context()), upd)
	w.WriteHeader(http.StatusOK)
}
