package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appreceiving "github.com/pharmstore/backend/internal/application/receiving"
	"github.com/pharmstore/backend/internal/infrastructure/cache"
	"github.com/pharmstore/backend/internal/infrastructure/config"
	"github.com/pharmstore/backend/internal/infrastructure/event"
	"github.com/pharmstore/backend/internal/infrastructure/logger"
	"github.com/pharmstore/backend/internal/infrastructure/persistence"
	"github.com/pharmstore/backend/internal/interfaces/rest"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := persistence.NewDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	defer persistence.Close(db)

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	serializer := event.NewJSONEventSerializer()
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(appreceiving.NewGRNCompletedHandler(log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bus.Start(ctx); err != nil {
		return err
	}

	processor := event.NewOutboxProcessor(
		persistence.NewGormOutboxRepository(db),
		bus,
		serializer,
		cfg.Outbox,
		log,
	)
	processor.Start(ctx)
	defer processor.Stop()

	scope := persistence.NewGormReceivingTransactionScope(db, cfg.Receiving, serializer)
	completionService := appreceiving.NewGRNCompletionService(
		scope,
		appreceiving.NewUnitConverter(log),
		appreceiving.NewCatalogResolver(log),
		log,
	)

	queryService := appreceiving.NewReceivingQueryService(
		persistence.NewGormGRNRepository(db),
		persistence.NewGormPurchaseOrderRepository(db),
		log,
	)

	barcodeCache := cache.NewBarcodeCache(
		redisClient,
		persistence.NewGormBarcodeRegistryRepository(db),
		cfg.Redis.BarcodeTTL,
		log,
	)

	grnHandler := rest.NewGRNHandler(completionService, queryService, barcodeCache, log)
	router := rest.NewRouter(cfg.Server, grnHandler, log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
