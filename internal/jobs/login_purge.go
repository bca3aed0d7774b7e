// File: internal/jobs/login_purge.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"ktm_rentals_backend/internal/config"
	"ktm_rentals_backend/internal/loginlog"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LoginPurgeJob periodically removes login events older than the retention
// window.
type LoginPurgeJob struct {
	loginLogService loginlog.Service
	logger          *zap.Logger
	cfg             *config.Config
	cronScheduler   *cron.Cron
}

// NewLoginPurgeJob creates a new LoginPurgeJob.
func NewLoginPurgeJob(
	loginLogService loginlog.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *LoginPurgeJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &LoginPurgeJob{
		loginLogService: loginLogService,
		logger:          logger.Named("LoginPurgeJob"),
		cfg:             cfg,
		cronScheduler:   scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *LoginPurgeJob) SetupAndStart() error {
	jobSpec := j.cfg.LoginPurgeJobSchedule // e.g., "@daily", "0 2 * * *"
	if jobSpec == "" {
		j.logger.Warn("Login purge job schedule not defined (LOGIN_PURGE_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule login purge job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Login purge job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *LoginPurgeJob) runJob() {
	j.logger.Info("Starting login purge job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := j.loginLogService.PurgeOlderThan(ctx, j.cfg.LoginEventRetentionDays)
	if err != nil {
		j.logger.Error("Login purge job run failed", zap.Error(err))
	} else {
		j.logger.Info("Login purge job run completed", zap.Int64("events_removed", removed))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *LoginPurgeJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping login purge job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Login purge job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Login purge job scheduler stop timed out.")
		}
	}
}

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
