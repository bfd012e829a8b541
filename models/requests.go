package models

import "strings"

// SubmitMentalHealthRequest is the check-in payload.
// Scales are nominally 0-10 and not range checked. Anxiety, depression and
// energy are optional; pointers keep "absent" distinct from zero.
type SubmitMentalHealthRequest struct {
	UserID      string `json:"userId" binding:"omitempty,max=50"`
	Mood        Mood   `json:"mood" binding:"required"`
	StressLevel *Scale `json:"stressLevel" binding:"required"`
	SleepHours  *Scale `json:"sleepHours" binding:"required"`
	Anxiety     *Scale `json:"anxiety"`
	Depression  *Scale `json:"depression"`
	EnergyLevel *Scale `json:"energyLevel"`
	Thoughts    string `json:"thoughts"`
}

// Normalize trims identifiers and lower-cases the mood
func (r *SubmitMentalHealthRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Mood = Mood(strings.ToLower(strings.TrimSpace(string(r.Mood))))
	r.Thoughts = strings.TrimSpace(r.Thoughts)
}

// TestTokenRequest asks for a development token
type TestTokenRequest struct {
	UserID string `json:"userId" binding:"required,max=50"`
}
