package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snippet-bot/api/router"
	"snippet-bot/config"
	"snippet-bot/contentstore"
	"snippet-bot/db"
	"snippet-bot/eventbus"
	"snippet-bot/generator"
	"snippet-bot/images"
	"snippet-bot/logger"
	"snippet-bot/pipeline"
	"snippet-bot/repositories"
	"snippet-bot/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx, cfg.Mongo); err != nil {
		logger.Log.Errorf("mongodb init failed: %v", err)
		os.Exit(1)
	}

	gen, err := generator.New(ctx, cfg.Generation)
	if err != nil {
		logger.Log.Errorf("generator init failed: %v", err)
		os.Exit(1)
	}

	store := contentstore.New(cfg.ContentStore)
	acquirer := images.New(cfg.Images, store)
	runs := repositories.NewRunRepository(db.Database())
	aiLogs := repositories.NewAIRequestLogRepository(db.Database())

	var publisher eventbus.Publisher = eventbus.NoopPublisher{}
	if cfg.EventBus.Enabled {
		kafkaPub, err := eventbus.NewKafkaPublisher(cfg.EventBus)
		if err != nil {
			logger.Log.Errorf("kafka publisher init failed: %v", err)
			os.Exit(1)
		}
		publisher = kafkaPub
	}
	defer publisher.Close()

	p := pipeline.New(cfg, gen, acquirer, store, runs, aiLogs, publisher)

	runTimeout := time.Duration(cfg.Schedule.TimeoutMinutes) * time.Minute
	sched, err := scheduler.New(cfg.Schedule.Timezone, runTimeout)
	if err != nil {
		logger.Log.Errorf("scheduler init failed: %v", err)
		os.Exit(1)
	}
	if err := sched.AddJob("daily-post", cfg.Schedule.Cron, p.Run); err != nil {
		logger.Log.Errorf("scheduler job registration failed: %v", err)
		os.Exit(1)
	}
	sched.Start()

	srv := &http.Server{
		Addr:    cfg.API.Addr,
		Handler: router.New(db.Database(), runs, p, runTimeout),
	}
	go func() {
		logger.InfoWithFields("ops API listening", logger.Fields{"addr": cfg.API.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")

	// let the in-flight invocation finish before closing anything under it
	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("http shutdown failed: %v", err)
	}

	if client := db.Client(); client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Log.Errorf("mongodb disconnect failed: %v", err)
		}
	}

	logger.Log.Info("bye")
}
