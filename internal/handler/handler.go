package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/config"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/realtime"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	engine        *roster.Engine
	upstream      *upstream.Client
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	hub           *realtime.Hub

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, engine *roster.Engine, client *upstream.Client, notifyCh *amqp.Channel, rdb *redis.Client, hub *realtime.Hub) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		engine:        engine,
		upstream:      client,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		hub:           hub,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/ws", h.hub.ServeWS)

		r.Route("/staff/hotel/{hotelSlug}/attendance", func(r chi.Router) {
			r.Use(h.hotel)

			r.Get("/periods/", h.GetPeriods)
			r.Route("/periods/{periodID}", func(r chi.Router) {
				r.Use(h.rosterPeriod)
				r.Get("/", h.GetPeriod)
				r.Get("/shifts/", h.GetRosterView)
				r.Get("/conflicts/", h.GetConflicts)
				r.Get("/export/", h.ExportRoster)

				r.Group(func(r chi.Router) {
					r.Use(h.preventEditFinalizedPeriod)

					r.Get("/drafts/", h.GetDrafts)
					r.Post("/drafts/", h.UpsertDraft)
					r.Delete("/drafts/", h.ClearDrafts)
					r.Delete("/drafts/{draftID}", h.RemoveDraft)

					r.Post("/copy/day/", h.CopyDay)
					r.Post("/copy/staff-week/", h.CopyStaffWeek)
					r.Post("/copy/bulk/", h.CopyBulk)

					r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor, domain.RoleManager})).Post("/shifts/bulk-save/", h.PublishDrafts)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/finalize/", h.FinalizePeriod)
				})
			})

			r.Get("/clock-logs/", h.GetClockLogs)
			r.Post("/clock-logs/", h.CreateClockLog)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleSupervisor, domain.RoleManager}))
				r.Post("/clock-logs/{logID}/approve/", h.ApproveClockLog)
				r.Post("/clock-logs/{logID}/reject/", h.RejectClockLog)
			})

			r.Get("/summary/", h.GetAttendanceSummary)
			r.Get("/staff/{staffID}/status/", h.GetStaffStatus)
		})
	})
}
