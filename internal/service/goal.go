package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailygoals/dailygoals/internal/llm"
	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/repository"
)

var (
	// ErrDailyLimitReached blocks a second generation for the same calendar
	// day; it clears on day rollover.
	ErrDailyLimitReached = errors.New("goals can only be generated once per day")
	// ErrProfileIncomplete means the questionnaire has not been fully
	// answered yet.
	ErrProfileIncomplete = errors.New("complete the questionnaire first to generate personalized goals")
)

// Progress summarizes today's completion state for the dashboard.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type GoalService struct {
	goalRepo     repository.GoalRepository
	responseRepo repository.ResponseRepository
	generator    llm.Generator
	now          func() time.Time
}

func NewGoalService(
	goalRepo repository.GoalRepository,
	responseRepo repository.ResponseRepository,
	generator llm.Generator,
) *GoalService {
	return &GoalService{
		goalRepo:     goalRepo,
		responseRepo: responseRepo,
		generator:    generator,
		now:          time.Now,
	}
}

// Generate runs the full pipeline for one generation event. The step order
// is deliberate: the daily-policy read and the profile load both happen
// before the external call so a blocked or unprepared request never spends
// API quota. The once-per-day invariant is ultimately enforced by the
// atomic reservation inside SaveBatch, so a concurrent duplicate fails at
// persist time even if both requests passed the initial check.
func (s *GoalService) Generate(ctx context.Context, userID string) ([]*model.Goal, error) {
	day := model.Day(s.now())

	ok, err := s.goalRepo.CanGenerate(userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to check daily limit: %w", err)
	}
	if !ok {
		return nil, ErrDailyLimitReached
	}

	profile, err := s.responseRepo.ProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	for _, q := range model.Questions {
		if _, ok := profile[q.Key]; !ok {
			return nil, ErrProfileIncomplete
		}
	}

	prompt := llm.BuildPrompt(profile)

	generated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	goals := make([]*model.Goal, 0, len(generated))
	for _, g := range generated {
		goals = append(goals, &model.Goal{
			UserID:      userID,
			Day:         day,
			Title:       g.Title,
			Description: g.Description,
			Category:    g.Category,
		})
	}

	err = s.goalRepo.SaveBatch(userID, day, goals)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyGenerated) {
			// Lost the race to a concurrent generation; the generated
			// content is discarded.
			return nil, ErrDailyLimitReached
		}
		return nil, fmt.Errorf("failed to save goals: %w", err)
	}

	slog.Info("daily goals generated", "user_id", userID, "day", day, "count", len(goals))
	return goals, nil
}

// TodayGoals lists the goals generated for the current calendar day.
func (s *GoalService) TodayGoals(userID string) ([]*model.Goal, error) {
	return s.goalRepo.GoalsForDay(userID, model.Day(s.now()))
}

// CanGenerateToday reports whether the daily policy allows a generation now.
func (s *GoalService) CanGenerateToday(userID string) (bool, error) {
	return s.goalRepo.CanGenerate(userID, model.Day(s.now()))
}

// Complete sets the one-way completion flag on a single goal.
func (s *GoalService) Complete(userID, goalID string) error {
	return s.goalRepo.MarkComplete(userID, goalID)
}

// TodayProgress returns completed/total counts for today's batch.
func (s *GoalService) TodayProgress(userID string) (Progress, error) {
	goals, err := s.TodayGoals(userID)
	if err != nil {
		return Progress{}, err
	}

	progress := Progress{Total: len(goals)}
	for _, goal := range goals {
		if goal.Completed {
			progress.Completed++
		}
	}

	return progress, nil
}
