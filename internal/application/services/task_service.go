package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// TaskService drives the per-day task timers. The store offers only
// read-then-write on task rows, so a mutex serializes mutations; with a
// single user that is all the coordination needed.
type TaskService struct {
	taskRepo     ports.TaskStateRepository
	activityRepo ports.ActivityRepository
	logger       *logger.Logger
	now          func() time.Time

	mu sync.Mutex
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskStateRepository, activityRepo ports.ActivityRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// ListToday returns the task catalog with today's state and live elapsed
// seconds for each task.
func (s *TaskService) ListToday(ctx context.Context) (*ports.DailyTasksResponse, error) {
	now := s.now()
	today := entities.DateOf(now)

	states, err := s.taskRepo.ListForDay(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list task states: %w", err)
	}

	byID := make(map[string]*entities.TaskState, len(states))
	for _, st := range states {
		byID[st.TaskID] = st
	}

	resp := &ports.DailyTasksResponse{
		Day:          entities.FormatDate(today),
		AllCompleted: true,
	}
	for _, task := range entities.TaskCatalog {
		state, ok := byID[task.ID]
		if !ok {
			state = entities.NewTaskState(task.ID, today)
		}
		if state.Status != entities.TaskStatusCompleted {
			resp.AllCompleted = false
		}
		resp.Tasks = append(resp.Tasks, ports.TaskStateResponse{
			Task:           task,
			Status:         state.Status,
			ElapsedSeconds: state.ElapsedSeconds(now),
			TargetSeconds:  int64(task.TargetDuration().Seconds()),
		})
	}

	return resp, nil
}

// Start begins the timer for a task. Only one task may run at a time.
func (s *TaskService) Start(ctx context.Context, taskID string) (*ports.TaskStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := entities.TaskByID(taskID)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	now := s.now()
	today := entities.DateOf(now)

	active, err := s.taskRepo.GetActive(ctx, today)
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("check active task: %w", err)
	}
	if active != nil && active.TaskID != taskID {
		return nil, entities.ErrTaskActive
	}

	state, err := s.loadState(ctx, taskID, today)
	if err != nil {
		return nil, err
	}

	if err := state.Start(now); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save task state: %w", err)
	}

	s.logger.Infow("Task started", "task_id", taskID, "day", entities.FormatDate(today))

	return s.stateResponse(task, state, now, false), nil
}

// Pause snapshots elapsed time for a running task.
func (s *TaskService) Pause(ctx context.Context, taskID string) (*ports.TaskStateResponse, error) {
	return s.transition(ctx, taskID, "paused", func(state *entities.TaskState, now time.Time) error {
		return state.Pause(now)
	})
}

// Resume restarts a paused task, rebasing its start epoch so the paused
// interval is excluded from elapsed time.
func (s *TaskService) Resume(ctx context.Context, taskID string) (*ports.TaskStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := entities.TaskByID(taskID)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	now := s.now()
	today := entities.DateOf(now)

	active, err := s.taskRepo.GetActive(ctx, today)
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("check active task: %w", err)
	}
	if active != nil && active.TaskID != taskID {
		return nil, entities.ErrTaskActive
	}

	state, err := s.loadState(ctx, taskID, today)
	if err != nil {
		return nil, err
	}

	if err := state.Resume(now); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save task state: %w", err)
	}

	s.logger.Infow("Task resumed", "task_id", taskID, "elapsed_seconds", state.ElapsedSeconds(now))

	return s.stateResponse(task, state, now, false), nil
}

// Complete finishes a task whose elapsed time has reached its target,
// credits the activity ledger with the task's minutes, and reports whether
// every task for the day is now done.
func (s *TaskService) Complete(ctx context.Context, taskID string) (*ports.TaskStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := entities.TaskByID(taskID)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	now := s.now()
	today := entities.DateOf(now)

	state, err := s.loadState(ctx, taskID, today)
	if err != nil {
		return nil, err
	}

	if err := state.Complete(now, task.TargetDuration()); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save task state: %w", err)
	}

	// Completed practice time feeds the ledger; ledger failures here are
	// surfaced, the task state itself is already durable.
	if _, err := s.activityRepo.Upsert(ctx, today, entities.ActivityDelta{Minutes: task.TargetMinutes}); err != nil {
		return nil, fmt.Errorf("credit activity: %w", err)
	}

	allDone, err := s.allCompletedLocked(ctx, today)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Task completed", "task_id", taskID, "all_completed", allDone)

	return s.stateResponse(task, state, now, allDone), nil
}

// AllCompleted reports whether every catalog task is completed for the day.
func (s *TaskService) AllCompleted(ctx context.Context, day time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allCompletedLocked(ctx, day)
}

func (s *TaskService) allCompletedLocked(ctx context.Context, day time.Time) (bool, error) {
	states, err := s.taskRepo.ListForDay(ctx, day)
	if err != nil {
		return false, fmt.Errorf("list task states: %w", err)
	}

	completed := make(map[string]bool, len(states))
	for _, st := range states {
		if st.Status == entities.TaskStatusCompleted {
			completed[st.TaskID] = true
		}
	}

	for _, task := range entities.TaskCatalog {
		if !completed[task.ID] {
			return false, nil
		}
	}
	return true, nil
}

func (s *TaskService) transition(ctx context.Context, taskID, action string, fn func(*entities.TaskState, time.Time) error) (*ports.TaskStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := entities.TaskByID(taskID)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	now := s.now()
	today := entities.DateOf(now)

	state, err := s.loadState(ctx, taskID, today)
	if err != nil {
		return nil, err
	}

	if err := fn(state, now); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save task state: %w", err)
	}

	s.logger.Infow("Task "+action, "task_id", taskID, "elapsed_seconds", state.ElapsedSeconds(now))

	return s.stateResponse(task, state, now, false), nil
}

func (s *TaskService) loadState(ctx context.Context, taskID string, day time.Time) (*entities.TaskState, error) {
	state, err := s.taskRepo.Get(ctx, taskID, day)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.NewTaskState(taskID, day), nil
		}
		return nil, fmt.Errorf("get task state: %w", err)
	}
	return state, nil
}

func (s *TaskService) stateResponse(task entities.DailyTask, state *entities.TaskState, now time.Time, allDone bool) *ports.TaskStateResponse {
	return &ports.TaskStateResponse{
		Task:           task,
		Status:         state.Status,
		ElapsedSeconds: state.ElapsedSeconds(now),
		TargetSeconds:  int64(task.TargetDuration().Seconds()),
		AllCompleted:   allDone,
	}
}
