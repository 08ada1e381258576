package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/router"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/kommo"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/logger"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if err := run(cfg, logr); err != nil {
		logr.Error("leads api stopped", zap.Error(err))
		_ = logr.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Banco
	db, err := database.NewDBConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logr.Info("database connected", zap.String("driver", cfg.Database.Driver))

	g, gctx := errgroup.WithContext(ctx)

	// 2. Eventos (opcional)
	var (
		publisher usecase.EventPublisher
		broker    *queue.RabbitMQ
	)
	if cfg.RabbitMQ.Enabled() {
		broker, err = queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer broker.Close()
		publisher = queue.NewProducer(broker.Ch)
		logr.Info("lead events enabled", zap.String("exchange", queue.ExchangeName))

		var notifiers queue.Notifiers
		if cfg.Mail.Enabled() {
			notifiers = append(notifiers, mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.To))
		}
		if cfg.Kommo.Enabled() {
			notifiers = append(notifiers, kommo.NewClient(cfg.Kommo.BaseURL, cfg.Kommo.Token, cfg.Kommo.StatusID, logr))
		}
		if len(notifiers) > 0 {
			worker := queue.NewWorker(broker.Ch, notifiers, logr)
			g.Go(func() error {
				return worker.Start(gctx, queue.QueueName)
			})
		}
	}

	// 3. UseCase + Handlers
	repo := database.NewLeadRepository(db)
	leadUC := usecase.NewLeadUseCase(repo, publisher, logr)
	leadHandler := handlers.NewLeadHandler(leadUC, logr)
	errWriter := handlers.NewErrorWriter(cfg.Server.ExposeErrors, logr)

	// 4. Servers
	api := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.New(router.LeadRoutes(leadHandler), errWriter, logr),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	servers := []*http.Server{api}

	if cfg.Admin.Addr != "" {
		var brokerConn handlers.BrokerConn
		if broker != nil {
			brokerConn = broker
		}
		servers = append(servers, &http.Server{
			Addr:        cfg.Admin.Addr,
			Handler:     router.NewAdmin(handlers.NewHealthHandler(db, brokerConn, version)),
			ReadTimeout: cfg.Server.ReadTimeout,
		})
	}

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logr.Info("http server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logr.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
