package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/config"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/handler"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/poller"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/realtime"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/repository"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", "error", err)
		return
	}

	/**********************************************
	 * draft store (local sqlite)
	 **********************************************/
	db, err := repository.Open(cfg.Drafts.Path)
	if err != nil {
		logger.Error("cannot open draft database", "error", err)
		return
	}
	defer db.Close()

	repo := repository.NewRepository(db)

	/**********************************************
	 * upstream hotel backend client
	 **********************************************/
	client := upstream.NewClient(cfg)

	/**********************************************
	 * reconciliation engine
	 **********************************************/
	engine := roster.NewEngine(repo, client)

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("cannot connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("cannot open channel", "error", err)
		return
	}
	defer ch.Close()

	for _, queue := range []string{handler.NotificationQueue, realtime.EventQueue} {
		_, err = ch.QueueDeclare(
			queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("cannot declare queue", "queue", queue, "error", err)
			return
		}
	}

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * realtime hub + event bridge
	 **********************************************/
	hub := realtime.NewHub()
	go hub.Run()

	bridgeCtx, cancelBridge := context.WithCancel(context.Background())
	defer cancelBridge()

	bridge := realtime.NewBridge(ch, hub)
	go func() {
		if err := bridge.Run(bridgeCtx); err != nil {
			logger.Error("event bridge stopped", "error", err)
		}
	}()

	/**********************************************
	 * attendance summary poller
	 **********************************************/
	go poller.New(cfg, client, rdb).Run(bridgeCtx)

	/**********************************************
	 * handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, engine, client, ch, rdb, hub)
	if err != nil {
		logger.Error("cannot create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("cannot start server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped cleanly")
}
