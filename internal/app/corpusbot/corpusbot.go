// Package corpusbot собирает приложение: хранилище, кеш, клиент Bot API,
// доменные сервисы и цикл получения обновлений.
package corpusbot

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/corpusfit/corpus-bot/internal/bot"
	"github.com/corpusfit/corpus-bot/internal/cache"
	"github.com/corpusfit/corpus-bot/internal/config"
	"github.com/corpusfit/corpus-bot/internal/lib/sl"
	"github.com/corpusfit/corpus-bot/internal/migrations"
	"github.com/corpusfit/corpus-bot/internal/services/accessgate"
	"github.com/corpusfit/corpus-bot/internal/services/entitlement"
	"github.com/corpusfit/corpus-bot/internal/services/ephemeral"
	"github.com/corpusfit/corpus-bot/internal/services/reconciler"
	"github.com/corpusfit/corpus-bot/internal/storage/repository"
	"github.com/corpusfit/corpus-bot/internal/telegram"
)

// App — собранное приложение бота.
type App struct {
	server      *http.Server
	logger      *slog.Logger
	db          *repository.Storage
	tg          *telegram.Client
	bot         *bot.Bot
	dispatcher  *ephemeral.Dispatcher
	pollTimeout time.Duration
	webhookPath string

	restartOnce sync.Once
	restartCh   chan struct{}
}

// New инициализирует все зависимости и собирает App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tgClient := telegram.NewClient(cfg.GatewayURL, cfg.BotToken)

	ents := entitlement.New(db, cfg.AdminIDs, logger)
	gate := accessgate.New(ents, cacheRedis, db, logger)
	recon := reconciler.New(ents, db, tgClient, cfg, logger)
	dispatcher := ephemeral.New(db, tgClient, cfg.RetentionTTL, cfg.ReapInterval, logger)

	app := &App{
		logger:      logger,
		db:          db,
		tg:          tgClient,
		dispatcher:  dispatcher,
		pollTimeout: cfg.Polling.PollTimeout,
		webhookPath: cfg.Polling.WebhookPath,
		restartCh:   make(chan struct{}),
	}

	app.bot = bot.New(bot.Deps{
		Transport:  tgClient,
		Ents:       ents,
		Reconciler: recon,
		Gate:       gate,
		Scheduler:  dispatcher,
		Sessions:   cacheRedis,
		Telemetry:  db,
		Plans:      cfg.Plans,
		AdminIDs:   cfg.AdminIDs,
		Restart:    app.requestRestart,
		Logger:     logger,
	})

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      app.routes(),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return app, nil
}

// requestRestart просит остановить приложение. Супервизор процесса
// поднимет его заново.
func (a *App) requestRestart() {
	a.restartOnce.Do(func() { close(a.restartCh) })
}

// Run запускает HTTP-сервер, диспетчер удалений и получение обновлений.
// Блокируется до отмены контекста, запроса перезапуска или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.dispatcher.Run(runCtx)
	}()

	if a.webhookPath == "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.pollUpdates(runCtx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var reason string
	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		_ = a.db.DB.Close()
		return err
	case <-ctx.Done():
		reason = "shutdown signal"
	case <-a.restartCh:
		reason = "restart requested"
	}

	a.logger.Info("shutting down", slog.String("reason", reason))
	cancel()

	timeoutCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	err := a.server.Shutdown(timeoutCtx)

	wg.Wait()
	_ = a.db.DB.Close()
	return err
}

// pollUpdates крутит long polling getUpdates до отмены контекста.
// Обновления обрабатываются последовательно, чтобы сообщения одного
// пользователя не обгоняли друг друга.
func (a *App) pollUpdates(ctx context.Context) {
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := a.tg.GetUpdates(ctx, offset, a.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.logger.Error("failed to fetch updates", sl.Err(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, upd := range updates {
			offset = upd.UpdateID + 1
			a.bot.HandleUpdate(ctx, upd)
		}
	}
}
