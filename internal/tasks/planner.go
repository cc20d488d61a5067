package tasks

import (
	"context"
	"fmt"
	"time"

	"tombola/internal/tombola"

	"github.com/google/logger"
	"github.com/robfig/cron/v3"
)

// StatsPublisher is implemented by *tombola.Service.
type StatsPublisher interface {
	PublishStats(ctx context.Context) (tombola.Stats, error)
}

// BroadcastStats pushes a fresh stats snapshot to the live feed.
func BroadcastStats(svc StatsPublisher) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := svc.PublishStats(ctx)
	if err != nil {
		logger.Errorf("Stats broadcast failed: %v", err)
		return
	}
	logger.V(1).Infof("Stats broadcast: %d participants, %d winners, %d eligible",
		st.Participants, st.Winners, st.Eligible)
}

// InitScheduler starts the cron scheduler. expr uses the six-field format
// with seconds.
func InitScheduler(expr string, svc StatsPublisher) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(expr, func() { BroadcastStats(svc) }); err != nil {
		return nil, fmt.Errorf("schedule stats broadcast %q: %w", expr, err)
	}

	c.Start()
	logger.Infof("Cron scheduler started (stats: %s)", expr)
	return c, nil
}
