package engine

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryDiscipline Category = "discipline"
	CategoryEndurance  Category = "endurance"
	CategoryMental     Category = "mental"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryDiscipline, CategoryEndurance, CategoryMental:
		return true
	default:
		return false
	}
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}

// parseStoredFrequency falls back to daily, the stricter gate.
func parseStoredFrequency(s string) Frequency {
	f, err := ParseFrequency(s)
	if err != nil {
		return FrequencyDaily
	}
	return f
}

// Exercise is the closed set of movements with cumulative rep counters.
type Exercise string

const (
	ExercisePushups Exercise = "pushups"
	ExerciseSquats  Exercise = "squats"
	ExerciseLunges  Exercise = "lunges"
	ExerciseAbs     Exercise = "abs"
)

// Exercises lists every tracked exercise in display order.
var Exercises = []Exercise{ExercisePushups, ExerciseSquats, ExerciseLunges, ExerciseAbs}

func (e Exercise) IsValid() bool {
	switch e {
	case ExercisePushups, ExerciseSquats, ExerciseLunges, ExerciseAbs:
		return true
	default:
		return false
	}
}

func parseStoredExercise(s *string) (Exercise, bool) {
	if s == nil {
		return "", false
	}
	e := Exercise(strings.TrimSpace(strings.ToLower(*s)))
	return e, e.IsValid()
}
