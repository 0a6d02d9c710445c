// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs a Job on a cron schedule.
type Scheduler struct {
	Cron *cron.Cron
	Job  *Job

	ctx    context.Context
	entry  cron.EntryID
	logger *zap.Logger
}

// NewScheduler registers job under schedule, a cron expression with a
// leading seconds field ("0 */5 * * * *") or a descriptor ("@every 1m").
// Rounds that would overlap a still running one are skipped.
func NewScheduler(ctx context.Context, job *Job, schedule string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("caller", "watch.Scheduler"))
	cl := cronLogger{logger.Sugar()}

	s := &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Job:    job,
		ctx:    ctx,
		logger: logger,
	}

	id, err := s.Cron.AddFunc(schedule, s.round)
	if err != nil {
		return nil, fmt.Errorf("register watch task: %w", err)
	}
	s.entry = id
	return s, nil
}

// RunNow executes one round immediately.
func (s *Scheduler) RunNow() []Result {
	return s.Job.RunOnce(s.ctx)
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started", zap.Time("next", s.Next()))
}

// Stop stops the scheduler and waits for a running round to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// Next returns when the next round runs. It is zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.Cron.Entry(s.entry).Next
}

// Wait blocks until ctx is done, then stops the scheduler.
func (s *Scheduler) Wait(ctx context.Context) {
	<-ctx.Done()
	s.Stop()
}

func (s *Scheduler) round() {
	if s.ctx.Err() != nil {
		return
	}
	s.Job.RunOnce(s.ctx)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
