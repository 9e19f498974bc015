package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/motion-bridge/internal/model"
)

var ErrEmptyBatch = errors.New("tasks array is empty")

// TaskCreator creates one task in the task-management service.
type TaskCreator interface {
	CreateTask(ctx context.Context, t model.Task) (model.Task, error)
}

type TaskService struct {
	creator TaskCreator
	logger  *zap.Logger
}

func NewTaskService(creator TaskCreator, logger *zap.Logger) *TaskService {
	return &TaskService{
		creator: creator,
		logger:  logger,
	}
}

// CreateBatch normalizes each input and creates it, strictly one at a time.
// A failed item is recorded and the batch moves on; results keep input order.
func (s *TaskService) CreateBatch(ctx context.Context, inputs []model.TaskInput) ([]model.ItemResult, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	now := time.Now()
	results := make([]model.ItemResult, 0, len(inputs))
	for i, in := range inputs {
		task := Normalize(in, DefaultsFor(in.Domain), now)

		created, err := s.creator.CreateTask(ctx, task)
		if err != nil {
			s.logger.Error("task creation failed",
				zap.Int("index", i),
				zap.String("title", task.Title),
				zap.Error(err),
			)
			results = append(results, model.ItemResult{Index: i, Status: model.StatusError, Message: err.Error()})
			continue
		}

		results = append(results, model.ItemResult{Index: i, Status: model.StatusOK, Task: &created})
	}

	return results, nil
}
