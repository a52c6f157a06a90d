package gamification

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconcileStreak(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	today := time.Date(2026, 3, 10, 9, 30, 0, 0, loc)

	tests := []struct {
		name      string
		lastLogin time.Time
		current   int
		want      int
	}{
		{"same day keeps streak", time.Date(2026, 3, 10, 0, 5, 0, 0, loc), 4, 4},
		{"yesterday increments", time.Date(2026, 3, 9, 23, 59, 0, 0, loc), 4, 5},
		{"two days ago resets", time.Date(2026, 3, 8, 12, 0, 0, 0, loc), 4, 1},
		{"long gap resets", time.Date(2025, 12, 25, 12, 0, 0, 0, loc), 30, 1},
		{"across month boundary", time.Date(2026, 2, 28, 8, 0, 0, 0, loc), 2, 1},
		{"other zone same local day", time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC), 1, 1},
		{"other zone previous local day", time.Date(2026, 3, 9, 21, 0, 0, 0, time.UTC), 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileStreak(tt.lastLogin, today, tt.current))
		})
	}
}

func TestReconcileStreakFirstOfMonth(t *testing.T) {
	today := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	last := time.Date(2026, 2, 28, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, 8, ReconcileStreak(last, today, 7))
}

func TestAwardExperience(t *testing.T) {
	tests := []struct {
		name   string
		xp     int
		level  int
		amount int
		want   Award
	}{
		{"within level", 10, 1, 40, Award{XP: 50, Level: 1}},
		{"crosses boundary", 60, 1, 40, Award{XP: 100, Level: 2, LeveledUp: true}},
		{"just below boundary", 60, 1, 39, Award{XP: 99, Level: 1}},
		{"multiple levels", 90, 1, 250, Award{XP: 340, Level: 4, LeveledUp: true}},
		{"zero amount", 150, 2, 0, Award{XP: 150, Level: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AwardExperience(tt.xp, tt.level, tt.amount))
		})
	}
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 11, LevelForXP(1050))
	assert.Equal(t, 1, LevelForXP(-5))
}

func TestProgressToNextLevel(t *testing.T) {
	tests := []struct {
		xp, level int
		want      Progress
	}{
		{0, 1, Progress{PointsNeeded: 100, PercentComplete: 0}},
		{45, 1, Progress{PointsNeeded: 55, PercentComplete: 0.45}},
		{130, 2, Progress{PointsNeeded: 170, PercentComplete: 0.30}},
		{200, 3, Progress{PointsNeeded: 300, PercentComplete: 0}},
	}

	for _, tt := range tests {
		got := ProgressToNextLevel(tt.xp, tt.level)
		assert.Equal(t, tt.want.PointsNeeded, got.PointsNeeded, "xp=%d level=%d", tt.xp, tt.level)
		assert.InDelta(t, tt.want.PercentComplete, got.PercentComplete, 1e-9)
	}
}

type fixedRoller int

func (f fixedRoller) IntN(n int) int {
	return int(f) % n
}

func TestRollAwardBounds(t *testing.T) {
	assert.Equal(t, MinLessonAward, RollAward(fixedRoller(0)))
	assert.Equal(t, MinLessonAward+LessonAwardSpread-1, RollAward(fixedRoller(LessonAwardSpread-1)))

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		amount := RollAward(rng)
		assert.GreaterOrEqual(t, amount, 25)
		assert.Less(t, amount, 75)
	}
}
