package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/config"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
	"github.com/redis/go-redis/v9"
)

// SummaryKey is the cache key for a hotel's attendance summary on a date.
func SummaryKey(hotel, date string) string {
	return fmt.Sprintf("attendance_summary_%s_%s", hotel, date)
}

// Poller refreshes attendance summaries for the configured hotels at a fixed
// interval, standing in for a push mechanism the upstream backend does not
// offer. Failed refreshes are logged and retried on the next tick only.
type Poller struct {
	cfg         *config.Config
	client      *upstream.Client
	redisClient *redis.Client
}

func New(cfg *config.Config, client *upstream.Client, rdb *redis.Client) *Poller {
	return &Poller{
		cfg:         cfg,
		client:      client,
		redisClient: rdb,
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(p.cfg.Poller.Interval) * time.Second)
	defer ticker.Stop()

	p.refreshAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refreshAll(ctx)
		}
	}
}

func (p *Poller) refreshAll(ctx context.Context) {
	today := time.Now().Format(domain.DateLayout)
	for _, hotel := range p.cfg.Poller.Hotels {
		if err := p.refresh(ctx, hotel, today); err != nil {
			slog.Error("summary refresh failed", "hotel", hotel, "error", err)
		}
	}
}

func (p *Poller) refresh(ctx context.Context, hotel, date string) error {
	summary, err := p.client.GetAttendanceSummary(ctx, hotel, date)
	if err != nil {
		return err
	}
	summary.RefreshedAt = time.Now()

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	return p.redisClient.Set(opCtx, SummaryKey(hotel, date), data,
		time.Duration(p.cfg.Redis.SummaryExpiration)*time.Second).Err()
}
