package jobs

import (
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Scheduler enqueues delayed close tasks for registration forms. It is a
// no-op when Redis is not configured so the API still works without a
// task queue.
type Scheduler struct {
	client   *asynq.Client
	redisURI string
	logger   *zap.Logger
}

func NewScheduler(client *asynq.Client, redisURI string, logger *zap.Logger) *Scheduler {
	return &Scheduler{client: client, redisURI: redisURI, logger: logger}
}

// deleteTask removes a previously scheduled task so rescheduling with the
// same id does not conflict.
func (s *Scheduler) deleteTask(taskID string) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: s.redisURI})
	defer inspector.Close()
	if err := inspector.DeleteTask("default", taskID); err != nil && err != asynq.ErrTaskNotFound {
		s.logger.Warn("failed to delete old task, skipping", zap.String("taskId", taskID), zap.Error(err))
	}
}

// ScheduleClose schedules a task that deactivates the form once its end
// date has passed. Extending a form re-schedules under the same task id.
func (s *Scheduler) ScheduleClose(formID string, endDate time.Time) {
	if s == nil || s.client == nil {
		return
	}
	task, err := NewCloseFormTask(formID)
	if err != nil {
		s.logger.Error("failed to build close-form task", zap.String("formId", formID), zap.Error(err))
		return
	}
	taskID := "close-form-" + formID
	s.deleteTask(taskID)

	if _, err := s.client.Enqueue(task, asynq.ProcessAt(endDate), asynq.TaskID(taskID)); err != nil {
		s.logger.Error("failed to schedule close-form task",
			zap.String("formId", formID),
			zap.Time("runAt", endDate),
			zap.Error(err))
		return
	}
	s.logger.Info("scheduled form close", zap.String("formId", formID), zap.Time("runAt", endDate))
}
