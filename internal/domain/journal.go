// Package domain defines the core types of the LifeForge personal
// operating system: daily journals, habits, learning progress, money,
// and the gamification layer derived from all of them.
package domain

// DateLayout is the canonical key format for daily logs.
const DateLayout = "2006-01-02"

// MaxFocusItems caps the number of free-text focus items per day.
const MaxFocusItems = 3

// DetoxOutcome is the result of a logged detox event.
type DetoxOutcome string

const (
	DetoxSuccess DetoxOutcome = "Success"
	DetoxFailure DetoxOutcome = "Failure"
)

// DetoxEntry records a single urge/response event inside a daily log.
// Entries are immutable once logged — there is no edit or delete path.
type DetoxEntry struct {
	Trigger  string       `json:"trigger"`
	Response string       `json:"response"`
	Outcome  DetoxOutcome `json:"outcome"`
}

// DailyLog is one journal record per (user, calendar date).
// Created on first write for a date, mutated by toggles and edits,
// never deleted in normal flow.
type DailyLog struct {
	Date            string       `json:"date"` // YYYY-MM-DD
	FocusItems      []string     `json:"focusItems"`
	HabitsCompleted []string     `json:"habitsCompleted"` // habit IDs, set semantics
	Mood            *int         `json:"mood,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	DetoxLog        []DetoxEntry `json:"detoxLog,omitempty"`
}

// HabitDone reports whether the given habit ID is marked complete in
// this log. Unknown IDs simply read as not done — logs hold weak
// references, so a deleted habit never invalidates history.
func (l DailyLog) HabitDone(habitID string) bool {
	for _, id := range l.HabitsCompleted {
		if id == habitID {
			return true
		}
	}
	return false
}

// HabitConfig defines a trackable habit. Categories are a
// configuration-time set validated at the API boundary, not an enum
// baked into the core: the default set is physical, mental, detox.
type HabitConfig struct {
	ID                    string `json:"id"`
	Label                 string `json:"label"`
	Category              string `json:"category"`
	RequiredInMinimalMode bool   `json:"requiredInMinimalMode"`
}

// DefaultHabitCategories is the shipped category set.
var DefaultHabitCategories = []string{"physical", "mental", "detox"}

// DefaultHabits is the starter habit set seeded for a new user.
func DefaultHabits() []HabitConfig {
	return []HabitConfig{
		{ID: "gym", Label: "Gym", Category: "physical", RequiredInMinimalMode: true},
		{ID: "cold_shower", Label: "Cold Shower", Category: "physical"},
		{ID: "skincare", Label: "Skincare", Category: "physical"},
		{ID: "problem_solving", Label: "Problem Solving", Category: "mental", RequiredInMinimalMode: true},
		{ID: "system_design", Label: "System Design", Category: "mental"},
		{ID: "comm_practice", Label: "Communication Practice", Category: "mental"},
		{ID: "fog_habit", Label: "Fog Habit Clean", Category: "detox", RequiredInMinimalMode: true},
		{ID: "impulse_loop", Label: "Impulse Loop Clean", Category: "detox"},
		{ID: "sleep", Label: "Sleep >= 7hrs", Category: "physical"},
	}
}
