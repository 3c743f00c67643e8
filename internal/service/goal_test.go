package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailygoals/dailygoals/internal/llm"
	"github.com/dailygoals/dailygoals/internal/model"
	"github.com/dailygoals/dailygoals/internal/repository"
)

// stubGenerator counts calls so tests can prove a blocked request never
// reaches the external API.
type stubGenerator struct {
	calls   int
	prompts []string
	goals   []llm.Goal
	err     error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) ([]llm.Goal, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return nil, g.err
	}
	return g.goals, nil
}

func stubGoals() []llm.Goal {
	return []llm.Goal{
		{Title: "Take a walk", Description: "Walk 20 minutes after lunch.", Category: "Health"},
		{Title: "Read a chapter", Description: "Read one chapter before bed.", Category: "Learning"},
		{Title: "Call a friend", Description: "Catch up with an old friend.", Category: "Relationships"},
	}
}

type goalTestEnv struct {
	svc       *GoalService
	generator *stubGenerator
	userID    string
}

func newGoalTestEnv(t *testing.T, withProfile bool) *goalTestEnv {
	t.Helper()

	database := newTestDB(t)
	user := registerTestUser(t, database, "alice@example.com")

	responseRepo := repository.NewResponseRepository(database)
	if withProfile {
		require.NoError(t, NewQuestionnaireService(responseRepo).Submit(user.ID, testAnswers()))
	}

	generator := &stubGenerator{goals: stubGoals()}
	svc := NewGoalService(repository.NewGoalRepository(database), responseRepo, generator)

	return &goalTestEnv{svc: svc, generator: generator, userID: user.ID}
}

func TestGoalServiceGenerate(t *testing.T) {
	t.Run("generates and persists three goals from the profile", func(t *testing.T) {
		env := newGoalTestEnv(t, true)

		goals, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)
		require.Len(t, goals, 3)
		assert.Equal(t, 1, env.generator.calls)

		// The prompt carries the stored answers, lists comma-joined.
		require.Len(t, env.generator.prompts, 1)
		prompt := env.generator.prompts[0]
		assert.Contains(t, prompt, "Software Engineer")
		assert.Contains(t, prompt, "Health, Learning")
		assert.Contains(t, prompt, "6/10")

		stored, err := env.svc.TodayGoals(env.userID)
		require.NoError(t, err)
		require.Len(t, stored, 3)
		assert.Equal(t, "Take a walk", stored[0].Title)
		assert.False(t, stored[0].Completed)
	})

	t.Run("second generation the same day is blocked before the API call", func(t *testing.T) {
		env := newGoalTestEnv(t, true)

		_, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)

		_, err = env.svc.Generate(context.Background(), env.userID)
		assert.ErrorIs(t, err, ErrDailyLimitReached)
		assert.Equal(t, 1, env.generator.calls)

		can, err := env.svc.CanGenerateToday(env.userID)
		require.NoError(t, err)
		assert.False(t, can)
	})

	t.Run("incomplete profile is rejected before the API call", func(t *testing.T) {
		env := newGoalTestEnv(t, false)

		_, err := env.svc.Generate(context.Background(), env.userID)
		assert.ErrorIs(t, err, ErrProfileIncomplete)
		assert.Equal(t, 0, env.generator.calls)
	})

	t.Run("a failed generation does not consume the day", func(t *testing.T) {
		env := newGoalTestEnv(t, true)
		env.generator.err = llm.ErrGeneration

		_, err := env.svc.Generate(context.Background(), env.userID)
		assert.ErrorIs(t, err, llm.ErrGeneration)

		can, err := env.svc.CanGenerateToday(env.userID)
		require.NoError(t, err)
		assert.True(t, can)

		env.generator.err = nil
		goals, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)
		assert.Len(t, goals, 3)
	})

	t.Run("parse and malformed errors pass through unchanged", func(t *testing.T) {
		for _, sentinel := range []error{llm.ErrParse, llm.ErrMalformed} {
			env := newGoalTestEnv(t, true)
			env.generator.err = sentinel

			_, err := env.svc.Generate(context.Background(), env.userID)
			assert.ErrorIs(t, err, sentinel)
		}
	})

	t.Run("day rollover allows a fresh generation", func(t *testing.T) {
		env := newGoalTestEnv(t, true)

		_, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)

		env.svc.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

		env.generator.goals = []llm.Goal{
			{Title: "Stretch", Description: "Morning stretch routine.", Category: "Health"},
			{Title: "Practice Go", Description: "One exercise on the train.", Category: "Learning"},
			{Title: "Cook dinner", Description: "Try the new recipe.", Category: "Hobbies"},
		}

		goals, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)
		require.Len(t, goals, 3)
		assert.Equal(t, 2, env.generator.calls)
		assert.Equal(t, "Stretch", goals[0].Title)

		// Yesterday's batch is untouched; today's view follows the clock.
		today, err := env.svc.TodayGoals(env.userID)
		require.NoError(t, err)
		assert.Equal(t, "Stretch", today[0].Title)
	})
}

func TestGoalServiceCompletion(t *testing.T) {
	t.Run("completing goals one by one drives progress to full", func(t *testing.T) {
		env := newGoalTestEnv(t, true)

		_, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)

		progress, err := env.svc.TodayProgress(env.userID)
		require.NoError(t, err)
		assert.Equal(t, Progress{Completed: 0, Total: 3}, progress)

		stored, err := env.svc.TodayGoals(env.userID)
		require.NoError(t, err)

		for i, goal := range stored {
			require.NoError(t, env.svc.Complete(env.userID, goal.ID))

			progress, err = env.svc.TodayProgress(env.userID)
			require.NoError(t, err)
			assert.Equal(t, Progress{Completed: i + 1, Total: 3}, progress)
		}
	})

	t.Run("completing an unknown goal fails", func(t *testing.T) {
		env := newGoalTestEnv(t, true)

		_, err := env.svc.Generate(context.Background(), env.userID)
		require.NoError(t, err)

		assert.ErrorIs(t, env.svc.Complete(env.userID, "missing"), repository.ErrGoalNotFound)
	})
}

func TestGoalServicePromptFields(t *testing.T) {
	// Every question key must surface in the prompt so no stored answer is
	// silently dropped.
	env := newGoalTestEnv(t, true)

	_, err := env.svc.Generate(context.Background(), env.userID)
	require.NoError(t, err)

	prompt := env.generator.prompts[0]
	assert.False(t, strings.Contains(prompt, "Not specified"))
	assert.Equal(t, len(model.Questions), 10)
}
