package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nataliestudio/services/backend"
	"nataliestudio/utils"
)

// DefaultKeepAliveInterval keeps the hosted backend from idling down.
const DefaultKeepAliveInterval = 5 * time.Minute

// KeepAlive periodically pings the backend's liveness endpoint. Results only
// feed the health snapshot; the appointment state is never touched.
type KeepAlive struct {
	client   backend.Client
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewKeepAlive(client backend.Client, interval time.Duration, logger *zap.Logger) *KeepAlive {
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeepAlive{
		client:   client,
		interval: interval,
		timeout:  30 * time.Second,
		logger:   logger,
	}
}

// Start schedules the ping every interval. The first ping fires one interval
// after Start.
func (k *KeepAlive) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", k.interval), k.Ping); err != nil {
		return fmt.Errorf("failed to schedule keep-alive: %w", err)
	}
	c.Start()
	k.cron = c
	k.logger.Info("[KeepAlive] scheduled", zap.Duration("interval", k.interval))
	return nil
}

// Stop halts the schedule and waits for a running ping to finish.
func (k *KeepAlive) Stop() {
	if k.cron == nil {
		return
	}
	<-k.cron.Stop().Done()
	k.cron = nil
}

// Ping performs a single liveness probe.
func (k *KeepAlive) Ping() {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	err := k.client.KeepAlive(ctx)
	utils.RecordBackendHealth(err, time.Now())
	if err != nil {
		k.logger.Error("[KeepAlive] failed to keep backend alive", zap.Error(err))
		return
	}
	k.logger.Debug("[KeepAlive] backend responded")
}
