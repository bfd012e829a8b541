package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMood is returned for moods the check-in form never offers
	ErrInvalidMood = errors.New("invalid mood")
	// ErrUnsupportedMood is returned for form moods the record schema cannot store
	ErrUnsupportedMood = errors.New("mood cannot be stored")
)

// Mood is the self-reported mood category
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodContent     Mood = "content"
	MoodNeutral     Mood = "neutral"
	MoodSad         Mood = "sad"
	MoodFrustrated  Mood = "frustrated"
	MoodAngry       Mood = "angry"
	MoodAnxious     Mood = "anxious"
	MoodOverwhelmed Mood = "overwhelmed"
)

// FormMoods lists the moods offered by the check-in form, in display order
var FormMoods = []Mood{
	MoodHappy,
	MoodContent,
	MoodNeutral,
	MoodSad,
	MoodFrustrated,
	MoodAngry,
	MoodAnxious,
	MoodOverwhelmed,
}

// StorableMoods is the record schema's enum. It is a strict subset of
// FormMoods; submissions with the other form moods are rejected.
var StorableMoods = []Mood{MoodHappy, MoodSad, MoodNeutral}

// IsFormMood reports whether the form offers m
func (m Mood) IsFormMood() bool {
	return containsMood(FormMoods, m)
}

// IsStorable reports whether a record can hold m
func (m Mood) IsStorable() bool {
	return containsMood(StorableMoods, m)
}

// ValidateForStorage returns ErrInvalidMood or ErrUnsupportedMood, wrapped
// with the offending value, when m cannot be persisted.
func (m Mood) ValidateForStorage() error {
	if !m.IsFormMood() {
		return fmt.Errorf("%w %q, must be one of: %v", ErrInvalidMood, m, FormMoods)
	}
	if !m.IsStorable() {
		return fmt.Errorf("%w: %q is not one of %v", ErrUnsupportedMood, m, StorableMoods)
	}
	return nil
}

func containsMood(moods []Mood, m Mood) bool {
	for _, candidate := range moods {
		if candidate == m {
			return true
		}
	}
	return false
}
