// Package gamification computes streaks, experience and levels.
// Every function is pure; callers persist the results.
package gamification

import "time"

const (
	// XPPerLevel is the experience needed to advance one level.
	XPPerLevel = 100

	// MinLessonAward and LessonAwardSpread bound the XP granted for a
	// completed lesson: MinLessonAward + [0, LessonAwardSpread).
	MinLessonAward    = 25
	LessonAwardSpread = 50
)

// Roller supplies random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Roller interface {
	IntN(n int) int
}

// ReconcileStreak returns the streak after a visit on today given the
// previous login. Dates are compared as calendar days in today's location.
func ReconcileStreak(lastLogin, today time.Time, current int) int {
	last := civilDate(lastLogin.In(today.Location()))
	day := civilDate(today)

	switch {
	case last.Equal(day):
		return current
	case last.Equal(day.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

// Award is the result of granting experience.
type Award struct {
	XP        int  `json:"xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveledUp"`
}

// AwardExperience adds amount to xp and derives the new level.
func AwardExperience(xp, level, amount int) Award {
	newXP := xp + amount
	newLevel := LevelForXP(newXP)
	return Award{
		XP:        newXP,
		Level:     newLevel,
		LeveledUp: newLevel > level,
	}
}

// LevelForXP is floor(xp/100)+1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Progress describes how far an account is into its current level.
type Progress struct {
	PointsNeeded    int     `json:"pointsNeeded"`
	PercentComplete float64 `json:"percentComplete"`
}

// ProgressToNextLevel reports the points still needed and the fraction of
// the current level already earned.
func ProgressToNextLevel(xp, level int) Progress {
	into := xp % XPPerLevel
	return Progress{
		PointsNeeded:    XPPerLevel*level - into,
		PercentComplete: float64(into) / XPPerLevel,
	}
}

// RollAward draws the XP for a completed lesson.
func RollAward(r Roller) int {
	return MinLessonAward + r.IntN(LessonAwardSpread)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
