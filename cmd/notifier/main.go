package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/config"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

const notificationQueue = "roster_notifications"

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * configuration
	 **********************************************/
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("cannot create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("cannot reach mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("cannot connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("cannot open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		notificationQueue,
		true,  // durable
		false, // keep the queue around when no consumer is attached
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("cannot declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("cannot consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancelConsume := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("notification received", slog.String("message", string(msg.Body)))

				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(msg.Body, &notification); err != nil {
					logger.Error("cannot decode notification", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.From); err != nil {
					logger.Error("cannot set mail sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(notification.To); err != nil {
					logger.Error("cannot set mail recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				var templateFile, subject string
				var payload any
				switch notification.Type {
				case "roster_published":
					templateFile = "./templates/roster_published_email.html"
					subject = "Roster published"
					payload = &domain.RosterPublishedMailData{}
				case "period_finalized":
					templateFile = "./templates/period_finalized_email.html"
					subject = "Roster period finalized"
					payload = &domain.PeriodFinalizedMailData{}
				default:
					logger.Error("unknown notification type", slog.String("type", notification.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := json.Unmarshal(notification.Data, payload); err != nil {
					logger.Error("cannot decode notification payload", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, err := template.ParseFiles(templateFile)
				if err != nil {
					logger.Error("cannot parse mail template", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, payload); err != nil {
					logger.Error("cannot set mail body", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(subject)

				if err := client.DialAndSend(m); err != nil {
					logger.Error("cannot send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue, the SMTP server may just be down
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	<-sigChan
	logger.Info("shutting down notifier...")
	cancelConsume()
	wg.Wait()
}
