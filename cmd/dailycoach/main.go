package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"dailycoach/internal/api"
	"dailycoach/internal/briefing"
	"dailycoach/internal/config"
	"dailycoach/internal/dismissal"
	"dailycoach/internal/engine"
	"dailycoach/internal/export"
	"dailycoach/internal/i18n"
	"dailycoach/internal/models"
	"dailycoach/internal/notify"
	"dailycoach/internal/platform/logger"
	"dailycoach/internal/repository"
	"dailycoach/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("dailycoach stopped with error", "error", err)
	}
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// Postgres
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info("connected to postgres", "host", cfg.DBHost, "db", cfg.DBName)

	repo := repository.New(db)

	// Скрытые алерты
	var dismissed dismissal.Store
	if cfg.RedisAddr != "" {
		client, err := dismissal.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		dismissed = dismissal.NewRedisStore(client, cfg.DismissTTL)
		log.Info("dismissals stored in redis", "addr", cfg.RedisAddr, "ttl", cfg.DismissTTL)
	} else {
		dismissed = dismissal.NewMemoryStore(cfg.DismissTTL)
		log.Warn("REDIS_ADDR not set, dismissals kept in memory")
	}

	svc := briefing.NewService(briefing.StoresFromRepository(repo), engine.NewAlertEngine(), dismissed, log.With("component", "briefing"))

	if err := startDelivery(ctx, cfg, svc, log); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewServer(svc, log.With("component", "api")).Handler(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// startDelivery schedules the morning briefing job when Telegram or export is configured
func startDelivery(ctx context.Context, cfg *config.Config, svc *briefing.Service, log *logger.Logger) error {
	if !cfg.DeliveryEnabled() && cfg.ExportDir == "" {
		log.Info("briefing delivery disabled")
		return nil
	}

	var notifier *notify.Notifier
	if cfg.DeliveryEnabled() {
		sender, err := notify.NewTelegramSender(cfg.BotToken)
		if err != nil {
			return err
		}
		log.Info("telegram bot authorized", "bot", sender.BotName())
		notifier = notify.NewNotifier(sender, i18n.Default(), log.With("component", "notify"))
	}

	if cfg.ExportDir != "" {
		if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	sched := scheduler.New(cfg.BriefingTimezone, log.With("component", "scheduler"))
	err := sched.Add("daily-briefing", cfg.BriefingCron, func(ctx context.Context) error {
		now := time.Now().In(cfg.BriefingTimezone)
		return svc.ForEachActive(ctx, now, func(u models.UserProfile, b engine.Briefing) error {
			if cfg.ExportDir != "" {
				name := fmt.Sprintf("briefing_%d_%s.xlsx", u.ID, now.Format("2006-01-02"))
				if err := export.SaveBriefing(filepath.Join(cfg.ExportDir, name), b, nil, i18n.ParseLanguage(u.Language)); err != nil {
					log.Error("export briefing", "user_id", u.ID, "error", err)
				}
			}
			if notifier == nil {
				return nil
			}
			return notifier.Deliver(ctx, u, b)
		})
	})
	if err != nil {
		return err
	}

	next, _ := scheduler.NextRun(cfg.BriefingCron, time.Now().In(cfg.BriefingTimezone))
	log.Info("briefing delivery scheduled", "next_run", next)
	sched.Start(ctx)
	return nil
}
