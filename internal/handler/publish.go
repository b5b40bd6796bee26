package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
	amqp "github.com/rabbitmq/amqp091-go"
)

const NotificationQueue = "roster_notifications"

func overrideTokenKey(hotel string, periodID int64, collection string) string {
	return fmt.Sprintf("publish_override_%s_%d_%s", hotel, periodID, collection)
}

type publishRequest struct {
	Collection   string `json:"collection" validate:"omitempty,oneof=drafts copied"`
	ConfirmToken string `json:"confirmToken"`
}

// decodePublishRequest reads the publish options. Both fields are optional,
// so a bare POST with no body is a plain publish of the draft collection.
func decodePublishRequest(body io.Reader) (*publishRequest, error) {
	req := &publishRequest{}
	if err := json.NewDecoder(body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if req.Collection == "" {
		req.Collection = string(roster.CollectionDrafts)
	}
	return req, nil
}

// PublishDrafts sends a pending collection upstream as one bulk-save batch.
//
// Overlaps within the batch block the publish outright. Overlaps against
// already-published shifts return a one-time confirmation token; repeating
// the request with that token is the explicit go-ahead to overwrite. The
// draft set survives every failure path untouched.
func (h *Handler) PublishDrafts(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	req, err := decodePublishRequest(r.Body)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	set, err := h.engine.Load(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	serverShifts, err := h.upstream.GetShifts(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	opCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	tokenKey := overrideTokenKey(hotel, period.ID, req.Collection)

	confirmed := false
	if req.ConfirmToken != "" {
		stored, err := h.redisClient.Get(opCtx, tokenKey).Result()
		if err != nil || stored != req.ConfirmToken {
			h.errorResponse(w, r, "invalid or expired confirmation token")
			return
		}
		confirmed = true
	}

	result, err := h.engine.Publish(r.Context(), set, roster.Collection(req.Collection), serverShifts, confirmed)
	if err != nil {
		var selfErr *roster.SelfConflictError
		var crossErr *roster.CrossConflictError
		var rejectedErr *roster.BulkSaveRejectedError
		var upstreamErr *upstream.Error
		switch {
		case errors.Is(err, roster.ErrEmptyCollection):
			h.errorResponse(w, r, "nothing to publish")
		case errors.As(err, &selfErr):
			h.errorResponseWithData(w, r, "cannot save roster: resolve overlapping shifts first", selfErr.Conflicts)
		case errors.As(err, &crossErr):
			token := generateOverrideToken()
			if err := h.redisClient.Set(opCtx, tokenKey, token, time.Duration(h.config.Drafts.OverrideExpiration)*time.Second).Err(); err != nil {
				h.internalServerError(w, r, err)
				return
			}
			h.errorResponseWithData(w, r, "pending shifts overlap published ones, confirm to overwrite", struct {
				Conflicts    []roster.Conflict `json:"conflicts"`
				ConfirmToken string            `json:"confirmToken"`
			}{Conflicts: crossErr.Conflicts, ConfirmToken: token})
		case errors.As(err, &rejectedErr):
			// per-item backend detail passes through unchanged, drafts kept
			h.errorResponseWithData(w, r, "the backend rejected part of the batch, drafts kept", rejectedErr.Result)
		case errors.As(err, &upstreamErr):
			h.errorResponse(w, r, "the backend refused the batch, drafts kept")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if confirmed {
		_ = h.redisClient.Del(opCtx, tokenKey).Err()
	}

	h.broadcastEvent(map[string]any{
		"type":     "roster_published",
		"hotel":    hotel,
		"periodID": period.ID,
		"created":  len(result.Created),
		"updated":  len(result.Updated),
	})

	if email, ok := r.Context().Value(EmailCtxKey).(string); ok && email != "" {
		h.queueNotification(r, "roster_published", email, domain.RosterPublishedMailData{
			Hotel:       hotel,
			PeriodTitle: period.Title,
			Created:     len(result.Created),
			Updated:     len(result.Updated),
		})
	}

	h.successResponse(w, r, "roster published", result)
}

// FinalizePeriod locks a period against further edits. The pending draft
// set must be empty (published or cleared) and the published roster must be
// free of overlaps.
func (h *Handler) FinalizePeriod(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	set, err := h.engine.Load(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !set.IsEmpty() {
		h.errorResponse(w, r, "publish or clear pending drafts before finalizing")
		return
	}

	serverShifts, err := h.upstream.GetShifts(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if conflicts := roster.DetectConflicts(serverShifts); len(conflicts) > 0 {
		h.errorResponseWithData(w, r, "published roster has overlapping shifts, resolve them first", conflicts)
		return
	}

	if err := h.upstream.FinalizePeriod(r.Context(), hotel, period.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.broadcastEvent(map[string]any{
		"type":     "period_finalized",
		"hotel":    hotel,
		"periodID": period.ID,
	})

	if email, ok := r.Context().Value(EmailCtxKey).(string); ok && email != "" {
		h.queueNotification(r, "period_finalized", email, domain.PeriodFinalizedMailData{
			Hotel:       hotel,
			PeriodTitle: period.Title,
			StartDate:   period.StartDate,
			EndDate:     period.EndDate,
		})
	}

	h.successResponse(w, r, "roster period finalized", nil)
}

func (h *Handler) broadcastEvent(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.hub.Broadcast(data)
}

// queueNotification hands a mail message to the notifier worker. Delivery
// problems only get logged: notifications never fail the main operation.
func (h *Handler) queueNotification(r *http.Request, msgType, to string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	data, err := json.Marshal(domain.NotificationMessage{
		Type: msgType,
		To:   to,
		Data: raw,
	})
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		NotificationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	); err != nil {
		h.logInternalServerError(r, err)
	}
}
